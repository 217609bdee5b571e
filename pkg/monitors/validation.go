package monitors

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/signalfx/winsnmp-agent/pkg/core/config"
	"github.com/signalfx/winsnmp-agent/pkg/core/config/validation"
)

var errUnknownMonitorType = errors.New("monitor type not recognized")

// Used to validate configuration that is common to all monitors up front.
func validateConfig(monConfig config.MonitorCustomConfig) error {
	conf := monConfig.MonitorConfigCore()

	if _, ok := MonitorFactories[conf.Type]; !ok {
		return errUnknownMonitorType
	}

	if conf.IntervalSeconds <= 0 {
		return fmt.Errorf("invalid intervalSeconds provided: %d", conf.IntervalSeconds)
	}

	if err := validation.ValidateStruct(monConfig); err != nil {
		return err
	}

	return validation.ValidateCustomConfig(monConfig)
}
