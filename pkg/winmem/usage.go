package winmem

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoPhysicalMemory is returned when the storage table has no RAM entry
var ErrNoPhysicalMemory = errors.New("no physical memory found in hrStorageTable")

// Usage is the memory and paging usage of a host.  Sizes are in bytes.
type Usage struct {
	MemoryTotal       int64
	MemoryUsed        int64
	PercentMemoryUsed float64
	PagingTotal       int64
	PagingUsed        int64
	PercentPagingUsed float64
}

// ComputeUsage sums up the RAM and virtual memory rows of the storage table.
// Hosts that report no virtual memory have zero paging.
func ComputeUsage(storage []Storage) (*Usage, error) {
	u := &Usage{}
	var sawRAM bool
	for i := range storage {
		s := &storage[i]
		switch s.Type {
		case StorageRAM:
			sawRAM = true
			u.MemoryTotal += s.SizeBytes()
			u.MemoryUsed += s.UsedBytes()
		case StorageVirtualMemory:
			u.PagingTotal += s.SizeBytes()
			u.PagingUsed += s.UsedBytes()
		}
	}
	if !sawRAM {
		return nil, ErrNoPhysicalMemory
	}

	u.PercentMemoryUsed = percent(u.MemoryUsed, u.MemoryTotal)
	u.PercentPagingUsed = percent(u.PagingUsed, u.PagingTotal)
	return u, nil
}

func percent(used, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(used) * 100 / float64(total)
}

// Format renders the usage as a status line followed by the perf data
func (u *Usage) Format() string {
	perf := []string{
		fmt.Sprintf("MemoryTotal=%d", u.MemoryTotal),
		fmt.Sprintf("MemoryUsed=%d", u.MemoryUsed),
		fmt.Sprintf("PercentMemoryUsed=%.2f", u.PercentMemoryUsed),
		fmt.Sprintf("PagingTotal=%d", u.PagingTotal),
		fmt.Sprintf("PagingUsed=%d", u.PagingUsed),
		fmt.Sprintf("PercentPagingUsed=%.2f", u.PercentPagingUsed),
	}
	return fmt.Sprintf("OK - memory usage %.2f%%|%s", u.PercentMemoryUsed, strings.Join(perf, " "))
}
