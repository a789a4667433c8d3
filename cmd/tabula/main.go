package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rdavey/tabula/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preference file path (optional)")
	noWatch := flag.Bool("no-watch", false, "do not watch the document for changes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tabula [flags] <document.html>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		DocPath:    flag.Arg(0),
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		NoWatch:    *noWatch,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "tabula: %v\n", err)
		return 1
	}
	return 0
}
