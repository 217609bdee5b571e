package cmdsnmpmem

// GAUGE(MemoryTotal): Total physical memory of the device in bytes.

// GAUGE(MemoryUsed): Physical memory in use on the device in bytes.

// GAUGE(PercentMemoryUsed): Percent of physical memory in use.

// GAUGE(PagingTotal): Total size of the paging file(s) in bytes.

// CUMULATIVE(PagingUsed): Paging used as a counter.  Stored as a derive with
// a minimum of 0 and no maximum.

// GAUGE(PercentPagingUsed): Percent of the paging file(s) in use.
