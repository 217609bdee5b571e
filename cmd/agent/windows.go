//go:build windows
// +build windows

package main

import (
	"os"

	"github.com/kardianos/service"
	log "github.com/sirupsen/logrus"
)

// WindowsEventLogHook is a logrus hook that emits to the Windows Application
// Event log.  It is only installed when the agent runs as a Windows Service
// with the "-logEvents" flag.
type WindowsEventLogHook struct {
	logger service.Logger
}

// Fire sends the entry to the event log at the closest supported level
func (h *WindowsEventLogHook) Fire(entry *log.Entry) error {
	msg, err := entry.String()
	if err != nil {
		return err
	}

	switch entry.Level {
	case log.PanicLevel, log.FatalLevel, log.ErrorLevel:
		return h.logger.Error(msg)
	case log.WarnLevel:
		return h.logger.Warning(msg)
	case log.InfoLevel, log.DebugLevel:
		return h.logger.Info(msg)
	default:
		return nil
	}
}

// Levels returns the logrus levels that the WindowsEventLogHook handles
func (h *WindowsEventLogHook) Levels() []log.Level {
	return log.AllLevels
}

// program is used by service.Service to control the agent
type program struct {
	interruptCh chan os.Signal
	flags       *flags
	done        chan struct{}
}

func (p *program) Start(s service.Service) error {
	go runAgent(p.flags, p.interruptCh, p.done)
	return nil
}

func (p *program) Stop(s service.Service) error {
	p.interruptCh <- os.Interrupt
	<-p.done
	return nil
}

// runAgentPlatformSpecific wraps the agent in a windows service.  The wrapper
// is used even when the agent is not registered as a service, in which case
// svc.Run blocks and runs the agent in the foreground.
func runAgentPlatformSpecific(flags *flags, interruptCh chan os.Signal, exitCh chan struct{}) {
	defer close(exitCh)

	config := &service.Config{
		Name:        "winsnmp-agent",
		DisplayName: "Windows SNMP Memory Agent",
		Description: "Collects memory and paging data from Windows hosts over SNMP",
		Arguments:   []string{"-config", flags.configPath},
	}
	if flags.logEvents {
		config.Arguments = append(config.Arguments, "-logEvents")
	}

	prgm := &program{
		interruptCh: interruptCh,
		flags:       flags,
		done:        make(chan struct{}),
	}

	svc, err := service.New(prgm, config)
	if err != nil {
		log.WithError(err).Error("Failed to find or create the service")
		return
	}

	if flags.logEvents {
		logger, err := svc.Logger(make(chan error, 500))
		if err != nil {
			log.WithError(err).Error("Unable to set up windows event logger")
		} else {
			log.AddHook(&WindowsEventLogHook{logger: logger})
		}
	}

	if flags.service != "" {
		err = service.Control(svc, flags.service)
	} else {
		err = svc.Run()
	}
	if err != nil {
		log.WithError(err).Error("Failed to control the service")
	}
}
