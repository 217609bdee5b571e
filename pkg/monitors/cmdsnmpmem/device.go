package cmdsnmpmem

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Device is the context a datasource is evaluated against: the device the
// template is bound to, along with the SNMP properties it carries.
type Device struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	ManageIP string `yaml:"manageIp"`
	// Device-level SNMP properties.  These are proxied into the collection
	// parameters when the datasource does not override them.
	SnmpVer       string `yaml:"zSnmpVer"`
	SnmpCommunity string `yaml:"zSnmpCommunity"`
}

// TitleOrID returns the device title, or its ID if it has no title
func (d *Device) TitleOrID() string {
	if d.Title != "" {
		return d.Title
	}
	return d.ID
}

var exprRE = regexp.MustCompile(`\$\{\s*([\w]+/[\w]+)\s*\}`)

// Eval renders the ${dev/...} and ${here/...} references in expr.  here is
// the ID of the object the template is applied to, which is the device
// itself for device-level templates.
func (d *Device) Eval(expr, here string) (string, error) {
	var evalErr error
	out := exprRE.ReplaceAllStringFunc(expr, func(m string) string {
		path := exprRE.FindStringSubmatch(m)[1]
		v, err := d.lookup(path, here)
		if err != nil && evalErr == nil {
			evalErr = err
		}
		return v
	})
	if evalErr != nil {
		return "", evalErr
	}
	return out, nil
}

func (d *Device) lookup(path, here string) (string, error) {
	parts := strings.SplitN(path, "/", 2)
	switch parts[0] {
	case "here":
		if parts[1] == "id" {
			return here, nil
		}
	case "dev":
		switch parts[1] {
		case "id":
			return d.ID, nil
		case "title":
			return d.TitleOrID(), nil
		case "manageIp":
			return d.ManageIP, nil
		case "zSnmpVer":
			return d.SnmpVer, nil
		case "zSnmpCommunity":
			return d.SnmpCommunity, nil
		}
	}
	return "", errors.Errorf("unknown expression ${%s}", path)
}
