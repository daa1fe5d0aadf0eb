// Command flicks organizes a directory of haphazardly-named video files
// into a library keyed against an IMDb-derived catalog.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/MimeLyc/flicks/internal/commands"
	"github.com/MimeLyc/flicks/internal/config"
	"github.com/MimeLyc/flicks/internal/ferr"
	"github.com/MimeLyc/flicks/internal/library"
	"github.com/MimeLyc/flicks/pkg/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := dispatch(os.Args[1], os.Args[2:]); err != nil {
		ferr.Log(err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: flicks <command> [arguments]

commands:
  init <directory>                 create a library root and config
  scan <directory> [-o <out>]      walk a tree and write a scan report
  view <report> [--no-html]        summarize a scan report
  import <report>                  transfer matched files into the library
  sync                             drop library entries for deleted files
  stats                            print the library movie count
  query [--title T] [--year Y]     search the library
  rehash                           recompute changed fingerprints
  ignore add|remove|list <paths>   manage the scan ignore list
  catalog watch                    run the scheduled catalog refresh loop`)
}

// quit is set once by the installed signal handler and polled by import
// between bounded steps of work so a SIGINT/SIGTERM lands cleanly instead
// of mid-write. catalog watch waits on the channel installSignalHandler
// returns instead.
var quit atomic.Bool

func installSignalHandler() <-chan struct{} {
	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("received interrupt, finishing current step and exiting")
		quit.Store(true)
		close(stop)
	}()
	return stop
}

func defaultConfigPath() (string, error) {
	return config.DefaultPath()
}

func dispatch(cmd string, args []string) error {
	if cmd == "init" {
		return runInit(args)
	}

	configPath, err := defaultConfigPath()
	if err != nil {
		return err
	}

	app, err := commands.Open(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	switch cmd {
	case "scan":
		return runScan(app, args)
	case "view":
		return runView(app, args)
	case "import":
		return runImport(app, args)
	case "sync":
		return app.Sync()
	case "stats":
		return app.Stats()
	case "query":
		return runQuery(app, args)
	case "rehash":
		return app.Rehash()
	case "ignore":
		return runIgnore(app, args)
	case "catalog":
		return runCatalog(app, args)
	default:
		usage()
		return ferr.New(ferr.KindValidation, fmt.Sprintf("unknown command %q", cmd))
	}
}

func runInit(args []string) error {
	if len(args) < 1 {
		return ferr.New(ferr.KindValidation, "usage: flicks init <directory>")
	}
	configPath, err := defaultConfigPath()
	if err != nil {
		return err
	}
	return commands.Init(configPath, args[0])
}

func runScan(app *commands.App, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	out := fs.String("o", "scan-report.mero", "path to write the scan report")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return ferr.New(ferr.KindValidation, "usage: flicks scan <directory> [-o <out>]")
	}
	return app.Scan(rest[0], *out)
}

func runView(app *commands.App, args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	noHTML := fs.Bool("no-html", false, "skip HTML rendering")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return ferr.New(ferr.KindValidation, "usage: flicks view <report> [--no-html]")
	}
	return app.View(rest[0], *noHTML)
}

func runImport(app *commands.App, args []string) error {
	if len(args) < 1 {
		return ferr.New(ferr.KindValidation, "usage: flicks import <report>")
	}
	installSignalHandler()
	return app.Import(args[0], &quit)
}

func runQuery(app *commands.App, args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	title := fs.String("title", "", "substring match against title")
	year := fs.Int("year", 0, "exact release year")
	yearGTE := fs.Int("year-gte", 0, "minimum release year")
	yearLTE := fs.Int("year-lte", 0, "maximum release year")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := library.QueryFilter{Title: *title}
	if *year != 0 {
		filter.HasYear, filter.Year = true, *year
	}
	if *yearGTE != 0 {
		filter.HasYearGTE, filter.YearGTE = true, *yearGTE
	}
	if *yearLTE != 0 {
		filter.HasYearLTE, filter.YearLTE = true, *yearLTE
	}
	return app.Query(filter)
}

func runIgnore(app *commands.App, args []string) error {
	if len(args) < 1 {
		return ferr.New(ferr.KindValidation, "usage: flicks ignore add|remove|list [paths...]")
	}
	switch args[0] {
	case "add":
		return app.IgnoreAdd(args[1:]...)
	case "remove":
		return app.IgnoreRemove(args[1:]...)
	case "list":
		return app.IgnoreList()
	default:
		return ferr.New(ferr.KindValidation, fmt.Sprintf("unknown ignore subcommand %q", args[0]))
	}
}

func runCatalog(app *commands.App, args []string) error {
	if len(args) < 1 || args[0] != "watch" {
		return ferr.New(ferr.KindValidation, "usage: flicks catalog watch")
	}
	stop := installSignalHandler()
	return app.Watch(stop)
}

