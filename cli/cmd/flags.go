// Package cmd provides CLI commands for the clipfrag binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// TUIFlag enables Bubble Tea interactive mode (plan only).
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Browse the result interactively (plan only)",
	}
)

// packingFlags control how a document is split. Shared by send and plan.
func packingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "chars",
			Aliases: []string{"c"},
			Usage:   "Fragment budget in characters (default 10_240)",
		},
		&cli.IntFlag{
			Name:    "bytes",
			Aliases: []string{"b"},
			Usage:   "Fragment budget in UTF-16 bytes",
		},
		&cli.StringFlag{
			Name:  "oversize",
			Usage: "Lines over the budget: force (send alone) or strict (fail)",
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to clipfrag.yaml",
			EnvVars: []string{"CLIPFRAG_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "s3-region",
			Usage: "AWS region for s3:// sources",
		},
		&cli.StringFlag{
			Name:  "s3-endpoint",
			Usage: "Custom endpoint for S3-compatible providers",
		},
	}
}

// TransferFlags returns the flags of the send command, which is also the
// root action.
func TransferFlags() []cli.Flag {
	return append(packingFlags(),
		&cli.StringFlag{
			Name:  "clipboard",
			Usage: "Clipboard backend: auto, system, command, osc52",
		},
		&cli.StringSliceFlag{
			Name:  "clipboard-command",
			Usage: "Clipboard program and arguments (repeat per argument)",
		},
		&cli.StringFlag{
			Name:  "journal",
			Usage: "Append a delivery journal to this file",
		},
		&cli.BoolFlag{
			Name:  "no-header",
			Usage: "Do not deliver header and footer messages",
		},
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "Print session counters to stdout when done",
		},
		FormatFlag,
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Write JSON logs to this file instead of stderr",
		},
	)
}

// PlanFlags returns the flags of the plan command.
func PlanFlags() []cli.Flag {
	return append(packingFlags(), FormatFlag, TUIFlag)
}
