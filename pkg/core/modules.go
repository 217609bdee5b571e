package core

// Do an import of all of the built-in monitors so they register themselves

import (
	_ "github.com/signalfx/winsnmp-agent/pkg/monitors/cmdsnmpmem"
)
