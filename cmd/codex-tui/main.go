// codex-tui browses the Prismfall roster and its fan-art gallery from the
// terminal. Fan art is kept in a SQLite file (--db) or, without one, for the
// current session only.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/MrSnakeDoc/codex/internal/app"
	"github.com/MrSnakeDoc/codex/internal/config"
	"github.com/MrSnakeDoc/codex/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts app.TUIOptions
	var showVersion bool

	flagSet := pflag.NewFlagSet("codex-tui", pflag.ContinueOnError)
	flagSet.StringVar(&opts.RosterFile, "roster", "characters.yaml", "path to the roster YAML file")
	flagSet.StringVar(&opts.DBPath, "db", "", "SQLite file holding the fan-art gallery (default: in memory)")
	flagSet.StringVar(&opts.SlotKey, "slot-key", config.DefaultSlotKey, "name of the gallery slot")
	flagSet.StringVar(&opts.IDGenerator, "id-generator", "secure", "fan-art id generator: secure or pseudo")
	flagSet.StringVar(&opts.LogFile, "log-file", "", "write JSON logs to this file (default: discard)")
	flagSet.StringVar(&opts.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Println(version.String("codex-tui"))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.RunTUI(ctx, opts)
}
