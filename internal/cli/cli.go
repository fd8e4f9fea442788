// Package cli parses command-line arguments into an app configuration.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/exprgraphgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("exprgraphgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
exprgraphgo - builds and edits expression graphs from declarative HCL scripts.

Usage:
  exprgraphgo [options] [SCRIPT_PATH]

Arguments:
  SCRIPT_PATH
    Path to a single .hcl script or a directory containing .hcl scripts.

Options:
`)
		flagSet.PrintDefaults()
	}

	scriptFlag := flagSet.String("script", "", "Path to the script file or directory.")
	sFlag := flagSet.String("s", "", "Path to the script file or directory (shorthand).")
	graphNameFlag := flagSet.String("graph-name", "session", "Name of the session graph.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *scriptFlag != "" {
		path = *scriptFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "a script path is required"}
	}

	cfg, err := app.NewConfig(app.Config{
		ScriptPath: path,
		GraphName:  *graphNameFlag,
		LogFormat:  *logFormatFlag,
		LogLevel:   *logLevelFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}
