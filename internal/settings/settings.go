package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"dirmirror/internal/log"
)

var (
	ErrUsage      = errors.New("usage error")
	ErrSameDirs   = errors.New("the source and destination directories cannot be the same")
	ErrNestedDirs = errors.New("the source and destination directories cannot be nested into each other")
)

const envPrefix = "DIRMIRROR_"

type Settings struct {
	SrcDir   string
	DstDir   string
	DryRun   bool
	LogLevel log.Level
	LogToStd bool
	LogFile  string
}

// Flags are the command line options of the application.
func Flags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:   "dry, dry-run",
			Usage:  "simulate the backup process: every decision is printed, nothing is changed",
			EnvVar: envPrefix + "DRY",
		},
		cli.StringFlag{
			Name:  "loglvl",
			Value: string(log.InfoLevel),
			Usage: fmt.Sprintf("level of logging, permitted values are: %v, %v, %v, %v",
				log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel),
			EnvVar: envPrefix + "LOGLVL",
		},
		cli.BoolTFlag{
			Name:   "log2std",
			Usage:  "if true, then logs are written to the console, otherwise - to the file set by -logfile",
			EnvVar: envPrefix + "LOG2STD",
		},
		cli.StringFlag{
			Name:   "logfile",
			Value:  "dirmirror.log",
			Usage:  "path of the log file used when -log2std=false",
			EnvVar: envPrefix + "LOGFILE",
		},
	}
}

// FromContext builds Settings out of parsed command line. A --dry given after the positional
// arguments is accepted too.
func FromContext(c *cli.Context) (*Settings, error) {
	stg := &Settings{
		DryRun:   c.Bool("dry"),
		LogToStd: c.BoolT("log2std"),
		LogFile:  c.String("logfile"),
	}

	var args []string
	for _, arg := range c.Args() {
		if arg == "--dry" || arg == "-dry" || arg == "--dry-run" {
			stg.DryRun = true
			continue
		}
		args = append(args, arg)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: exactly two arguments (SOURCE and DESTINATION) must present, got %d", ErrUsage, len(args))
	}
	if args[0] == "" || args[1] == "" {
		return nil, fmt.Errorf("%w: directory paths cannot be empty", ErrUsage)
	}

	var err error
	if stg.SrcDir, err = filepath.Abs(args[0]); err != nil {
		return nil, fmt.Errorf("path %q cannot be converted to absolute: %v", args[0], err)
	}
	if stg.DstDir, err = filepath.Abs(args[1]); err != nil {
		return nil, fmt.Errorf("path %q cannot be converted to absolute: %v", args[1], err)
	}
	if stg.SrcDir == stg.DstDir {
		return nil, fmt.Errorf("%w: %q", ErrSameDirs, stg.SrcDir)
	}
	if isNested(stg.SrcDir, stg.DstDir) || isNested(stg.DstDir, stg.SrcDir) {
		return nil, fmt.Errorf("%w: %q and %q", ErrNestedDirs, stg.SrcDir, stg.DstDir)
	}

	if stg.LogLevel, err = log.ParseLevel(c.String("loglvl")); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return stg, nil
}

// Validate checks the preconditions that make the run impossible at all.
func (stg *Settings) Validate() error {
	if err := validateDirectoryPath(stg.SrcDir); err != nil {
		return fmt.Errorf("the first (source) directory is invalid: %w", err)
	}
	info, err := os.Stat(stg.DstDir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("the second (destination) directory is invalid: path %q is not a directory path", stg.DstDir)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("the second (destination) directory is invalid: %w", err)
	}
	return nil
}

func (stg *Settings) LogOptions() log.Options {
	return log.Options{Level: stg.LogLevel, LogToStd: stg.LogToStd, LogFile: stg.LogFile}
}

func validateDirectoryPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path %q is not a directory path", path)
	}
	return nil
}

func isNested(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
