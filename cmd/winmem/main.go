// winmem prints the memory and paging usage of a host as read over SNMP.
//
//	winmem [-timeout 10s] [-preview] <host> <snmp version> <community>
//
// On success it prints one line with the usage as name=value pairs after a
// '|' and exits 0.  On failure the error goes to stderr and it exits 1.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/signalfx/winsnmp-agent/pkg/winmem"
)

var (
	timeout time.Duration
	preview bool
)

func init() {
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "SNMP request `timeout`")
	flag.BoolVar(&preview, "preview", false, "show the storage table on stderr")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()
	if flag.NArg() != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <host> <snmp version> <community>\n", os.Args[0])
		flag.PrintDefaults()
		return 1
	}
	host, ver, community := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	version, err := winmem.ParseVersion(ver)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	usage, storage, err := winmem.Collect(winmem.NewHandler(ctx, host, version, community, timeout), version)
	if preview && storage != nil {
		winmem.RenderTable(os.Stderr, storage)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading storage table of %s: %v\n", host, err)
		return 1
	}

	fmt.Println(usage.Format())
	return 0
}
