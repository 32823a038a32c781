// Command identitystore-reconcile is the offline maintenance tool for the
// Account & Access-Key identity store: it scans both directions of the
// two-index scheme and heals what it can, reporting what it found. It is
// invoked by hand or from cron, never by the HTTP/XML front end.
//
// Usage: identitystore-reconcile [-v] <config-root>
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shirady/noobaa-core/identitystore/identity"
	"github.com/shirady/noobaa-core/identitystore/internal"
)

type reconcileRow struct {
	Action    string
	AccessKey string
}

func main() {
	verbose := flag.Bool("v", false, "write log messages to stderr")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: identitystore-reconcile [-v] <config-root>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		internal.Log.SetWriter(os.Stderr)
	} else {
		internal.Log.SetWriter(nil)
	}

	root := flag.Arg(0)
	s, err := identity.New(identity.Options{Root: root})
	if err != nil {
		internal.Log.F("open store at %s: %v", root, err)
	}

	report, err := s.Reconcile(context.Background())
	if err != nil {
		internal.Log.F("reconcile: %v", err)
	}

	rows := make([]*reconcileRow, 0,
		len(report.SymlinksCreated)+len(report.DanglingSymlinks)+len(report.OrphansRemoved))
	for _, k := range report.SymlinksCreated {
		rows = append(rows, &reconcileRow{Action: "symlink-created", AccessKey: k})
	}
	for _, k := range report.DanglingSymlinks {
		rows = append(rows, &reconcileRow{Action: "dangling", AccessKey: k})
	}
	for _, k := range report.OrphansRemoved {
		rows = append(rows, &reconcileRow{Action: "orphan-removed", AccessKey: k})
	}
	if len(rows) == 0 {
		fmt.Println("identitystore-reconcile: index already consistent")
		return
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	internal.NewPrinter(rows, nil).Print(w, nil)
}
