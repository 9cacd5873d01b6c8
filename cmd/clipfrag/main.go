// Package main provides the clipfrag CLI entrypoint.
//
// Usage:
//
//	clipfrag [flags] [FILE|-|s3://bucket/key]
//	clipfrag <command> [options]
//
// Exit codes:
//   - 0: success, including quit at any prompt
//   - 1: I/O failure (clipboard, terminal, source, journal)
//   - 2: input is not valid in any supported encoding
//   - 3: usage or configuration error
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/clipfrag/cli/cmd"
	"github.com/pithecene-io/clipfrag/types"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	app := &cli.App{
		Name:           "clipfrag",
		Usage:          "Paste large text through a size-limited clipboard, one fragment at a time",
		Version:        fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		ArgsUsage:      cmd.SendArgsUsage(),
		Flags:          cmd.TransferFlags(),
		Action:         cmd.SendAction,
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			cmd.SendCommand(),
			cmd.PlanCommand(),
			cmd.JournalCommand(),
			cmd.VersionCommand(commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already exited for cli.ExitCoder errors.
		os.Exit(1)
	}
}

// exitErrHandler prints err and exits with its code.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}
	os.Exit(exitStatus(os.Stderr, err))
}

// exitStatus reports err on w and returns the process exit code. Codes
// from cli.Exit pass through; anything else is 1.
func exitStatus(w io.Writer, err error) int {
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() is "exit status N"; nothing to say.
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			_, _ = fmt.Fprintln(w, msg)
		}
		return code
	}

	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
