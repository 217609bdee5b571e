package winmem

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gosnmp/gosnmp"
	"github.com/pkg/errors"
)

// OIDs from HOST-RESOURCES-MIB
const (
	hrStorageEntry           = "1.3.6.1.2.1.25.2.3.1"
	hrStorageType            = hrStorageEntry + ".2"
	hrStorageDescr           = hrStorageEntry + ".3"
	hrStorageAllocationUnits = hrStorageEntry + ".4"
	hrStorageSize            = hrStorageEntry + ".5"
	hrStorageUsed            = hrStorageEntry + ".6"

	StorageRAM           = "1.3.6.1.2.1.25.2.1.2"
	StorageVirtualMemory = "1.3.6.1.2.1.25.2.1.3"
)

// Storage is one row of hrStorageTable
type Storage struct {
	Index int
	Type  string
	Descr string
	// Size of one allocation unit in bytes
	AllocationUnits int64
	// Size and Used are counted in allocation units
	Size int64
	Used int64
}

// SizeBytes is the size of the storage in bytes
func (s *Storage) SizeBytes() int64 {
	return s.Size * s.AllocationUnits
}

// UsedBytes is how much of the storage is used in bytes
func (s *Storage) UsedBytes() int64 {
	return s.Used * s.AllocationUnits
}

// TypeName is a short name of the storage type, or the type OID if it is not
// one of the memory types
func (s *Storage) TypeName() string {
	switch s.Type {
	case StorageRAM:
		return "ram"
	case StorageVirtualMemory:
		return "virtualMemory"
	}
	return s.Type
}

// ReadStorage walks hrStorageTable.  SNMP v1 agents don't support GETBULK,
// so they are walked with GETNEXT.
func ReadStorage(h Handler, version gosnmp.SnmpVersion) ([]Storage, error) {
	rows := map[int]*Storage{}

	walkFn := func(pdu gosnmp.SnmpPDU) error {
		column, index, err := splitStorageOID(pdu.Name)
		if err != nil {
			return err
		}
		row, ok := rows[index]
		if !ok {
			row = &Storage{Index: index}
			rows[index] = row
		}

		switch column {
		case hrStorageType:
			oid, ok := pdu.Value.(string)
			if !ok {
				return errors.Errorf("hrStorageType.%d is %T, not an OID", index, pdu.Value)
			}
			row.Type = strings.TrimPrefix(oid, ".")
		case hrStorageDescr:
			if b, ok := pdu.Value.([]byte); ok {
				row.Descr = string(b)
			}
		case hrStorageAllocationUnits:
			row.AllocationUnits = gosnmp.ToBigInt(pdu.Value).Int64()
		case hrStorageSize:
			row.Size = gosnmp.ToBigInt(pdu.Value).Int64()
		case hrStorageUsed:
			row.Used = gosnmp.ToBigInt(pdu.Value).Int64()
		}
		return nil
	}

	var err error
	if version == gosnmp.Version1 {
		err = h.Walk(hrStorageEntry, walkFn)
	} else {
		err = h.BulkWalk(hrStorageEntry, walkFn)
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not walk hrStorageTable")
	}

	out := make([]Storage, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// Returns the column OID and the row index of an hrStorageTable cell
func splitStorageOID(name string) (string, int, error) {
	name = strings.TrimPrefix(name, ".")
	i := strings.LastIndex(name, ".")
	if i < 0 || !strings.HasPrefix(name, hrStorageEntry+".") {
		return "", 0, errors.Errorf("%s is not in hrStorageTable", name)
	}
	index, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return "", 0, errors.Wrapf(err, "bad row index in %s", name)
	}
	return name[:i], index, nil
}
