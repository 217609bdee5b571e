//go:build !windows
// +build !windows

package main

import "os"

func runAgentPlatformSpecific(flags *flags, interruptCh chan os.Signal, exitCh chan struct{}) {
	go runAgent(flags, interruptCh, exitCh)
}
