package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"dirmirror/internal/log"
	"dirmirror/internal/mirror"
	"dirmirror/internal/settings"
	"dirmirror/pkg/helpers/fsys"
	"dirmirror/pkg/helpers/run"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

const (
	exitOK      = 0
	exitFailure = 1
)

var separator = strings.Repeat("-", 80)

func main() {
	os.Exit(runApp(os.Args, os.Stdout, os.Stderr))
}

func runApp(args []string, stdout, stderr io.Writer) int {
	exitCode := exitOK
	app := newApp(stdout, stderr, &exitCode)
	if err := app.Run(args); err != nil {
		// flags parsing errors are already reported together with the usage
		return exitFailure
	}
	return exitCode
}

func newApp(stdout, stderr io.Writer, exitCode *int) *cli.App {
	app := cli.NewApp()
	app.Name = "dirmirror"
	app.Usage = "make DESTINATION an exact mirror of SOURCE"
	app.UsageText = "dirmirror [OPTION]... SOURCE DESTINATION"
	app.Description = "Exit status:\n   0  if OK,\n   1  if minor problems (e.g., cannot access subdirectory) or invalid usage"
	app.Version = version
	app.Writer, app.ErrWriter = stdout, stderr
	app.Flags = settings.Flags()
	cli.VersionPrinter = func(c *cli.Context) {
		_, _ = fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, c.App.Version)
	}

	app.Action = func(c *cli.Context) error {
		stg, err := settings.FromContext(c)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			_ = cli.ShowAppHelp(c)
			*exitCode = exitFailure
			return nil
		}
		*exitCode = mirrorDirs(stg, stdout, stderr)
		return nil
	}
	return app
}

func mirrorDirs(stg *settings.Settings, stdout, stderr io.Writer) int {
	logger, err := log.New(stg.LogOptions())
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "cannot set up logging:", err)
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()

	if err := stg.Validate(); err != nil {
		logger.Error("invalid settings", log.Cause(err))
		_, _ = fmt.Fprintln(stderr, err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printBanner(stdout, stg)
	m := mirror.New(logger, fsys.NewBaseOSFS(), mirror.Options{
		SrcDir:        stg.SrcDir,
		DstDir:        stg.DstDir,
		DryRun:        stg.DryRun,
		Out:           stdout,
		PassSeparator: separator,
	})

	var result *mirror.Result
	done := run.AsyncWithError(func() (err error) {
		result, err = m.Run(ctx)
		return err
	})
	select {
	case err = <-done:
	case <-ctx.Done():
		logger.Warn("interrupted, stopping after the current entry")
		err = <-done
	}
	if err != nil {
		logger.Error("mirroring failed", log.Cause(err))
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}

	_, _ = fmt.Fprintln(stdout, separator)
	_, _ = fmt.Fprintln(stdout, "Done: "+result.Summary())
	if !result.Clean() {
		logger.Warn("some entries were skipped", log.Int("skipped", len(result.Skipped)), log.Cause(result.Err()))
		return exitFailure
	}
	return exitOK
}

func printBanner(w io.Writer, stg *settings.Settings) {
	_, _ = fmt.Fprintln(w, separator)
	_, _ = fmt.Fprintln(w, "Source:", stg.SrcDir)
	_, _ = fmt.Fprintln(w, "Destination:", stg.DstDir)
	_, _ = fmt.Fprintln(w, separator)
	if stg.DryRun {
		_, _ = fmt.Fprintln(w, "Dry run: Backup simulation in progress...")
	} else {
		_, _ = fmt.Fprintln(w, "Backup in progress...")
	}
}
