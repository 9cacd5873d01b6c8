// Package source loads the raw bytes of the document to transfer.
//
// A reference is "" or "-" for stdin, an s3://bucket/key URI, or a local
// file path. Named sources carry a label used in header and footer
// messages; stdin has none.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotFound indicates the referenced document does not exist.
var ErrNotFound = errors.New("source not found")

// Input is a loaded document.
type Input struct {
	Data []byte
	// Label names the source, empty for stdin.
	Label string
	// Stdin reports whether Data was read from standard input.
	Stdin bool
}

// Options configures Open.
type Options struct {
	// Stdin is read for "" and "-". Defaults to os.Stdin.
	Stdin io.Reader
	// S3 configures the client for s3:// references.
	S3 S3Config

	// s3Client overrides client construction in tests.
	s3Client ObjectGetter
}

// IsStdin reports whether ref names standard input.
func IsStdin(ref string) bool {
	return ref == "" || ref == "-"
}

// Open reads the document named by ref.
func Open(ctx context.Context, ref string, opts Options) (*Input, error) {
	switch {
	case IsStdin(ref):
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &Input{Data: data, Stdin: true}, nil

	case strings.HasPrefix(ref, s3Scheme):
		bucket, key, err := ParseS3URI(ref)
		if err != nil {
			return nil, err
		}
		client := opts.s3Client
		if client == nil {
			c, err := NewS3Client(ctx, opts.S3)
			if err != nil {
				return nil, err
			}
			client = c
		}
		data, err := getObject(ctx, client, bucket, key)
		if err != nil {
			return nil, err
		}
		return &Input{Data: data, Label: ref}, nil

	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
			}
			return nil, fmt.Errorf("read %s: %w", ref, err)
		}
		return &Input{Data: data, Label: ref}, nil
	}
}
