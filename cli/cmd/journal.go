package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/clipfrag/cli/reader"
	"github.com/pithecene-io/clipfrag/cli/render"
	"github.com/pithecene-io/clipfrag/journal"
)

// JournalCommand returns the journal command.
// It reads a delivery journal written by send --journal. A journal whose
// last record was cut short still renders, flagged as truncated.
func JournalCommand() *cli.Command {
	return &cli.Command{
		Name:      "journal",
		Usage:     "Show the records of a delivery journal",
		ArgsUsage: "JOURNAL_FILE",
		Flags:     []cli.Flag{FormatFlag, TUIFlag},
		Action:    journalAction,
	}
}

func journalAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageError(errors.New("journal requires exactly one JOURNAL_FILE argument"))
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return usageError(err)
	}
	if c.Bool("tui") {
		return usageError(errors.New("--tui is not supported for journal command"))
	}

	resp, err := readJournal(c.Args().First())
	if err != nil {
		return ioError(err)
	}
	return r.Render(resp)
}

func readJournal(path string) (*reader.JournalResponse, error) {
	records, err := journal.ReadFile(path)
	truncated := journal.IsTruncated(err)
	if err != nil && !truncated {
		return nil, err
	}
	return reader.Journal(path, records, truncated), nil
}
