// The winsnmp agent runs the configured monitors and writes what they
// collect.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/signalfx/winsnmp-agent/pkg/core"
)

var (
	// Version for agent
	Version string
	// BuiltTime for the agent
	BuiltTime string
)

const defaultConfigPath = "/etc/winsnmp/agent.yaml"

func init() {
	log.SetFormatter(&prefixed.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// flags is used to store parsed flag values
type flags struct {
	// version is a bool flag for printing the agent version string
	version bool
	// configPath is a string flag for specifying the agent.yaml config file
	configPath string
	// debug is a bool flag for printing debug level information
	debug bool
	// service is a string flag used for starting, stopping, installing or
	// uninstalling the agent as a windows service (windows only)
	service string
	// logEvents copies log entries to the Windows Application Event log when
	// the agent runs as a Windows Service.
	logEvents bool
}

func getFlags() *flags {
	flags := &flags{}
	set := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	set.BoolVar(&flags.version, "version", false, "print agent version")
	set.StringVar(&flags.configPath, "config", defaultConfigPath, "agent config path")
	set.BoolVar(&flags.debug, "debug", false, "print debugging output")

	if runtime.GOOS == "windows" {
		set.StringVar(&flags.service, "service", "", "'start', 'stop', 'install' or 'uninstall' agent as a windows service.  You may specify an alternate config file path with the -config flag when installing the service.")
		set.BoolVar(&flags.logEvents, "logEvents", false, "copy log events from the agent to the Windows Application Event Log.  This is only used when the agent is deployed as a Windows service.")
	}

	_ = set.Parse(os.Args[1:])
	if len(set.Args()) > 0 {
		os.Stderr.WriteString("Non-flag parameters are not accepted\n")
		set.Usage()
		os.Exit(2)
	}
	return flags
}

// runAgent starts the agent and blocks until interruptCh fires, closing exit
// once the agent is down.
func runAgent(flags *flags, interruptCh chan os.Signal, exit chan struct{}) {
	defer close(exit)

	log.Info("Starting up agent version " + Version)
	agent, err := core.Startup(flags.configPath, flags.debug)
	if err != nil {
		log.WithError(err).Error("Could not start agent")
		return
	}

	hupCh := make(chan os.Signal, 1)
	signal.Notify(hupCh, syscall.SIGHUP)

	for {
		select {
		case <-hupCh:
			log.Info("Reloading config")
			if err := agent.Reload(); err != nil {
				log.WithError(err).Error("Could not reload config, keeping the current monitors")
			}
		case <-interruptCh:
			log.Info("Interrupt signal received, stopping agent")
			done := make(chan struct{})
			go func() {
				agent.Shutdown()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(10 * time.Second):
				log.Error("Shutdown timed out, forcing process down")
			}
			return
		}
	}
}

func main() {
	flags := getFlags()

	core.VersionLine = fmt.Sprintf("agent-version: %s, built-time: %s\n", Version, BuiltTime)

	if flags.version {
		fmt.Print(core.VersionLine)
		os.Exit(0)
	}

	if flags.debug {
		log.SetLevel(log.DebugLevel)
	}

	interruptCh := make(chan os.Signal, 1)
	signal.Notify(interruptCh, os.Interrupt, syscall.SIGTERM)

	exitCh := make(chan struct{})
	runAgentPlatformSpecific(flags, interruptCh, exitCh)
	<-exitCh
}
