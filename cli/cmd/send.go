package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/clipfrag/cli/render"
	"github.com/pithecene-io/clipfrag/clipboard"
	"github.com/pithecene-io/clipfrag/decode"
	"github.com/pithecene-io/clipfrag/document"
	"github.com/pithecene-io/clipfrag/journal"
	"github.com/pithecene-io/clipfrag/log"
	"github.com/pithecene-io/clipfrag/metrics"
	"github.com/pithecene-io/clipfrag/source"
	"github.com/pithecene-io/clipfrag/transfer"
	"github.com/pithecene-io/clipfrag/tty"
	"github.com/pithecene-io/clipfrag/types"
)

const sendArgsUsage = "[FILE|-|s3://bucket/key]"

// SendCommand returns the send command. The root command runs the same
// action when invoked without a subcommand.
func SendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Copy a document to the clipboard one fragment at a time",
		ArgsUsage: sendArgsUsage,
		Description: `Splits the document into fragments of whole lines that fit the budget and
places them on the clipboard one by one, prompting before each.

At each prompt: Y(es) copies the next fragment, P(rev) copies the last one
again, Q(uit) clears the clipboard and exits. Reading stops at end of input.`,
		Flags:  TransferFlags(),
		Action: SendAction,
	}
}

// SendArgsUsage is the argument synopsis of the send action.
func SendArgsUsage() string { return sendArgsUsage }

// SendAction runs a transfer session.
func SendAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return usageError(errTooManySources(c.NArg()))
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return usageError(err)
	}
	st, err := resolveSettings(c, cfg)
	if err != nil {
		return usageError(err)
	}

	var summary render.Format
	if c.Bool("summary") {
		if summary, err = render.ParseFormat(c.String("format")); err != nil {
			return usageError(err)
		}
		if summary == "" {
			summary = render.DefaultFormat(os.Stdout)
		}
	}

	return runSend(c.Context, st, c.Args().First(), summary, defaultSendEnv())
}

func errTooManySources(n int) error {
	return fmt.Errorf("expected at most one source, got %d", n)
}

// sendEnv holds the process resources a session touches.
type sendEnv struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	openSink  func(clipboard.Backend, clipboard.Options) (clipboard.Sink, clipboard.Backend, error)
	openInput func(stdinIsDocument bool) (tty.LineReader, io.Closer, error)
}

func defaultSendEnv() sendEnv {
	return sendEnv{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		openSink: clipboard.Open,
		openInput: func(stdinIsDocument bool) (tty.LineReader, io.Closer, error) {
			r, err := tty.OpenTerminal(stdinIsDocument)
			if err != nil {
				return nil, nil, err
			}
			return r, r, nil
		},
	}
}

// runSend loads the document named by ref and runs the session. A
// non-empty summary format renders the session counters to stdout.
func runSend(ctx context.Context, st *settings, ref string, summary render.Format, env sendEnv) error {
	doc, label, err := loadDocument(ctx, st, ref, env.stdin)
	if err != nil {
		return err
	}
	if err := tty.NewPrompter(env.stderr).Notice("encoding: %s", label); err != nil {
		return ioError(fmt.Errorf("write notice: %w", err))
	}

	meta := types.NewSessionMeta(doc.Source(), st.Unit.String(), st.MaxUnits)
	if err := meta.Validate(); err != nil {
		return usageError(err)
	}
	logger, closeLog, err := openLogger(meta, st, env.stderr)
	if err != nil {
		return ioError(err)
	}
	defer closeLog()

	sink, backend, err := env.openSink(st.Backend, clipboard.Options{
		Command:  st.Command,
		Terminal: env.stderr,
	})
	if err != nil {
		return ioError(err)
	}
	logger.Debug("clipboard backend selected", map[string]any{"backend": string(backend)})

	input, closer, err := env.openInput(source.IsStdin(ref))
	if err != nil {
		return ioError(err)
	}
	defer func() { _ = closer.Close() }()

	var recorder transfer.Recorder
	if st.Journal != "" {
		jw, err := journal.Create(st.Journal, meta.SessionID)
		if err != nil {
			return ioError(err)
		}
		defer func() {
			if err := jw.Close(); err != nil {
				logger.Sugar().Warnf("failed to close journal %s: %v", st.Journal, err)
			}
		}()
		recorder = jw
	}

	collector := metrics.NewCollector(meta.SessionID, st.Unit.String(), st.MaxUnits, string(backend))

	orch, err := transfer.New(&transfer.Config{
		Document:  doc,
		Sink:      sink,
		Input:     input,
		Output:    env.stderr,
		Messages:  st.Messages,
		Header:    st.Header,
		Footer:    st.Footer,
		Journal:   recorder,
		Collector: collector,
		Logger:    logger,
	})
	if err != nil {
		return usageError(err)
	}

	res, err := orch.Run()
	if err != nil {
		return ioError(err)
	}
	logger.Sugar().Infof("session %s: %s from %s at line %d/%d after %s",
		meta.SessionID, res.Reason, res.QuitFrom, res.Cursor, res.Lines, res.Duration.Round(time.Millisecond))

	if summary != "" {
		if err := render.NewRendererWithWriter(summary, env.stdout).Render(collector.Snapshot()); err != nil {
			return ioError(err)
		}
	}
	return nil
}

// loadDocument reads and decodes the source and builds the document. The
// returned errors already carry exit codes.
func loadDocument(ctx context.Context, st *settings, ref string, stdin io.Reader) (*document.Document, string, error) {
	in, err := source.Open(ctx, ref, source.Options{Stdin: stdin, S3: st.S3})
	if err != nil {
		return nil, "", ioError(err)
	}

	text, label, err := decode.Detect(in.Data)
	if err != nil {
		if errors.Is(err, decode.ErrUndecodable) {
			return nil, "", cli.Exit(err.Error(), exitDecode)
		}
		return nil, "", ioError(err)
	}

	doc, err := document.New(text, document.Options{
		Unit:     st.Unit,
		MaxUnits: st.MaxUnits,
		Oversize: st.Oversize,
		Source:   in.Label,
	})
	if err != nil {
		return nil, "", usageError(err)
	}
	return doc, label, nil
}

// openLogger returns the session logger, writing to the --log-file path
// when set and to stderr otherwise.
func openLogger(meta *types.SessionMeta, st *settings, stderr io.Writer) (*log.Logger, func(), error) {
	if st.LogFile == "" {
		logger := log.NewLoggerWithWriter(meta, stderr, st.LogLevel)
		return logger, func() { _ = logger.Sync() }, nil
	}

	f, err := os.OpenFile(st.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewLoggerWithWriter(meta, f, st.LogLevel)
	return logger, func() {
		_ = logger.Sync()
		_ = f.Close()
	}, nil
}
