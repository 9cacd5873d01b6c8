package cmd

import (
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/clipfrag/cli/reader"
	"github.com/pithecene-io/clipfrag/cli/render"
	"github.com/pithecene-io/clipfrag/types"
)

// VersionCommand returns the version command.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  []cli.Flag{FormatFlag},
		Action: versionAction(commit),
	}
}

func versionAction(commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		r, err := render.NewRenderer(c)
		if err != nil {
			return usageError(err)
		}
		return r.Render(versionInfo(commit))
	}
}

func versionInfo(commit string) reader.VersionResponse {
	return reader.VersionResponse{
		Version:       types.Version,
		Commit:        commit,
		JournalFormat: types.JournalFormat,
		GoVersion:     runtime.Version(),
	}
}
