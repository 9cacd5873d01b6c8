package cmd

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/clipfrag/cli/reader"
	"github.com/pithecene-io/clipfrag/cli/render"
)

// PlanCommand returns the plan command.
// Plan shows how a document would be fragmented without touching the
// clipboard.
func PlanCommand() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "List the fragments a document would be sent in",
		ArgsUsage: sendArgsUsage,
		Flags:     PlanFlags(),
		Action:    planAction,
	}
}

func planAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return usageError(errTooManySources(c.NArg()))
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return usageError(err)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return usageError(err)
	}
	st, err := resolveSettings(c, cfg)
	if err != nil {
		return usageError(err)
	}

	resp, err := buildPlan(c.Context, st, c.Args().First(), os.Stdin)
	if err != nil {
		return err
	}

	if c.Bool("tui") {
		if err := r.RenderTUI("plan", resp); err != nil {
			return ioError(err)
		}
		return nil
	}
	return r.Render(resp)
}

// buildPlan loads the document and lists its fragments.
func buildPlan(ctx context.Context, st *settings, ref string, stdin io.Reader) (*reader.PlanResponse, error) {
	doc, label, err := loadDocument(ctx, st, ref, stdin)
	if err != nil {
		return nil, err
	}
	resp, err := reader.Plan(doc, label)
	if err != nil {
		return nil, ioError(err)
	}
	return resp, nil
}
