package winmem

import (
	"github.com/gosnmp/gosnmp"
	"github.com/pkg/errors"
)

// Collect connects with h, reads the storage table and computes usage from
// it.  The storage rows are returned as well so they can be shown.
func Collect(h Handler, version gosnmp.SnmpVersion) (*Usage, []Storage, error) {
	if err := h.Connect(); err != nil {
		return nil, nil, errors.Wrap(err, "could not connect")
	}
	defer h.Close()

	storage, err := ReadStorage(h, version)
	if err != nil {
		return nil, nil, err
	}

	usage, err := ComputeUsage(storage)
	if err != nil {
		return nil, storage, err
	}
	return usage, storage, nil
}
