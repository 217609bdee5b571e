// Package winmem reads memory and paging usage of a host from the
// HOST-RESOURCES-MIB storage table over SNMP.
package winmem

import (
	"context"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/pkg/errors"
)

// Handler is the part of gosnmp.GoSNMP that is used here
type Handler interface {
	Walk(rootOid string, walkFn gosnmp.WalkFunc) error
	BulkWalk(rootOid string, walkFn gosnmp.WalkFunc) error

	Connect() error
	Close() error
}

type snmpHandler struct {
	gosnmp.GoSNMP
}

// NewHandler makes a handler that talks to target on the standard SNMP port
func NewHandler(ctx context.Context, target string, version gosnmp.SnmpVersion, community string, timeout time.Duration) Handler {
	return &snmpHandler{
		gosnmp.GoSNMP{
			Context:            ctx,
			Target:             target,
			Port:               161,
			Transport:          "udp",
			Community:          community,
			Version:            version,
			Timeout:            timeout,
			Retries:            1,
			ExponentialTimeout: true,
			MaxOids:            gosnmp.MaxOids,
		},
	}
}

func (x *snmpHandler) Close() error {
	return x.GoSNMP.Conn.Close()
}

// ParseVersion turns the SNMP version as given on the command line into a
// gosnmp version.  Only v1 and v2c are supported.
func ParseVersion(v string) (gosnmp.SnmpVersion, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "v1", "1":
		return gosnmp.Version1, nil
	case "v2c", "2c", "v2", "2":
		return gosnmp.Version2c, nil
	}
	return 0, errors.Errorf("unsupported SNMP version %q", v)
}
