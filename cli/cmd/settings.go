package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/pithecene-io/clipfrag/cli/config"
	"github.com/pithecene-io/clipfrag/clipboard"
	"github.com/pithecene-io/clipfrag/document"
	"github.com/pithecene-io/clipfrag/log"
	"github.com/pithecene-io/clipfrag/source"
	"github.com/pithecene-io/clipfrag/transfer"
)

// Exit codes.
const (
	exitSuccess = 0
	exitIOError = 1
	exitDecode  = 2
	exitUsage   = 3
)

// settings is the resolved configuration of one invocation.
type settings struct {
	Unit     document.UnitKind
	MaxUnits int
	Oversize document.OversizePolicy

	Header   bool
	Footer   transfer.FooterMode
	Messages transfer.Messages

	Backend clipboard.Backend
	Command []string

	Journal  string
	LogLevel zapcore.Level
	LogFile  string

	S3 source.S3Config
}

// loadConfig loads the file named by --config or $CLIPFRAG_CONFIG. It
// returns nil when neither is set.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := config.Discover(c.String("config"))
	if path == "" {
		return nil, nil
	}
	return config.Load(path)
}

// resolveSettings merges flags over cfg over built-in defaults.
func resolveSettings(c *cli.Context, cfg *config.Config) (*settings, error) {
	st := &settings{}

	var err error
	if st.Unit, st.MaxUnits, err = resolveBudget(c, cfg); err != nil {
		return nil, err
	}

	if st.Oversize, err = document.ParseOversizePolicy(
		resolveString(c, "oversize", configVal(cfg, func(c *config.Config) string { return c.Oversize }))); err != nil {
		return nil, err
	}

	st.Header = cfg == nil || cfg.HeaderEnabled()
	if c.Bool("no-header") {
		st.Header = false
	}
	if st.Footer, err = parseFooterMode(configVal(cfg, func(c *config.Config) string { return c.Footer })); err != nil {
		return nil, err
	}
	if !st.Header {
		st.Footer = transfer.FooterNever
	}
	st.Messages = transfer.Messages{
		Header:        configVal(cfg, func(c *config.Config) string { return c.Messages.Header }),
		Footer:        configVal(cfg, func(c *config.Config) string { return c.Messages.Footer }),
		FooterUnnamed: configVal(cfg, func(c *config.Config) string { return c.Messages.FooterUnnamed }),
	}

	if st.Backend, err = clipboard.ParseBackend(
		resolveString(c, "clipboard", configVal(cfg, func(c *config.Config) string { return c.Clipboard.Backend }))); err != nil {
		return nil, err
	}
	st.Command = configVal(cfg, func(c *config.Config) []string { return c.Clipboard.Command })
	if c.IsSet("clipboard-command") {
		st.Command = c.StringSlice("clipboard-command")
	}

	st.Journal = resolveString(c, "journal", configVal(cfg, func(c *config.Config) string { return c.Journal }))
	st.LogFile = resolveString(c, "log-file", configVal(cfg, func(c *config.Config) string { return c.Log.File }))
	if st.LogLevel, err = log.ParseLevel(
		resolveString(c, "log-level", configVal(cfg, func(c *config.Config) string { return c.Log.Level }))); err != nil {
		return nil, err
	}

	st.S3 = source.S3Config{
		Region:       resolveString(c, "s3-region", configVal(cfg, func(c *config.Config) string { return c.S3.Region })),
		Endpoint:     resolveString(c, "s3-endpoint", configVal(cfg, func(c *config.Config) string { return c.S3.Endpoint })),
		UsePathStyle: configVal(cfg, func(c *config.Config) bool { return c.S3.PathStyle }),
	}

	return st, nil
}

func resolveBudget(c *cli.Context, cfg *config.Config) (document.UnitKind, int, error) {
	chars, bytes := c.IsSet("chars"), c.IsSet("bytes")

	var unit document.UnitKind
	var maxUnits int
	switch {
	case chars && bytes:
		return 0, 0, errors.New("-c/--chars and -b/--bytes are mutually exclusive")
	case chars:
		unit, maxUnits = document.UnitChars, c.Int("chars")
	case bytes:
		unit, maxUnits = document.UnitBytes, c.Int("bytes")
	default:
		var err error
		if unit, err = document.ParseUnitKind(configVal(cfg, func(c *config.Config) string { return c.Unit })); err != nil {
			return 0, 0, err
		}
		maxUnits = configVal(cfg, func(c *config.Config) int { return c.Max })
		if maxUnits == 0 {
			maxUnits = document.DefaultMaxUnits
		}
	}

	if maxUnits <= 0 {
		return 0, 0, fmt.Errorf("%w: got %d", document.ErrInvalidBudget, maxUnits)
	}
	return unit, maxUnits, nil
}

func parseFooterMode(s string) (transfer.FooterMode, error) {
	switch s {
	case "", "auto":
		return transfer.FooterAuto, nil
	case "always":
		return transfer.FooterAlways, nil
	case "never":
		return transfer.FooterNever, nil
	default:
		return transfer.FooterAuto, fmt.Errorf("invalid footer mode: %q (must be auto, always or never)", s)
	}
}

// resolveString returns the flag when set on the command line, else the
// config value when non-empty, else the flag default.
func resolveString(c *cli.Context, name, cfgVal string) string {
	if c.IsSet(name) || cfgVal == "" {
		return c.String(name)
	}
	return cfgVal
}

// configVal reads a field from cfg, or the zero value when cfg is nil.
func configVal[T any](cfg *config.Config, get func(*config.Config) T) T {
	var zero T
	if cfg == nil {
		return zero
	}
	return get(cfg)
}

// usageError marks err as a usage or configuration error.
func usageError(err error) error {
	return cli.Exit(err.Error(), exitUsage)
}

// ioError marks err as an I/O failure.
func ioError(err error) error {
	return cli.Exit(err.Error(), exitIOError)
}
