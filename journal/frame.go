package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	// LengthPrefixSize is the size of the big-endian length prefix.
	LengthPrefixSize = 4
	// MaxPayloadSize bounds a single record.
	MaxPayloadSize = 1024 * 1024
)

// FrameErrorKind classifies frame errors.
type FrameErrorKind int

const (
	// FrameErrorPartial indicates a truncated frame, e.g. after a crash
	// mid-write.
	FrameErrorPartial FrameErrorKind = iota
	// FrameErrorTooLarge indicates a length prefix over MaxPayloadSize.
	FrameErrorTooLarge
	// FrameErrorDecode indicates a msgpack decoding error.
	FrameErrorDecode
)

// FrameError represents a journal framing error.
type FrameError struct {
	Kind FrameErrorKind
	Msg  string
	Err  error
}

func (e *FrameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// IsTruncated reports whether err is a partial trailing frame.
func IsTruncated(err error) bool {
	var fe *FrameError
	return errors.As(err, &fe) && fe.Kind == FrameErrorPartial
}

// EncodeFrame encodes rec as a length-prefixed msgpack frame.
func EncodeFrame(rec Record) ([]byte, error) {
	payload, err := msgpack.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	if len(payload) > MaxPayloadSize {
		return nil, &FrameError{
			Kind: FrameErrorTooLarge,
			Msg:  fmt.Sprintf("payload size %d exceeds maximum %d", len(payload), MaxPayloadSize),
		}
	}
	frame := make([]byte, LengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[LengthPrefixSize:], payload)
	return frame, nil
}

// Decoder reads records from a journal stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder creates a decoder over r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next reads one record. It returns io.EOF at a clean end of stream.
func (d *Decoder) Next() (Record, error) {
	var lengthBuf [LengthPrefixSize]byte
	if _, err := io.ReadFull(d.r, lengthBuf[:]); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, &FrameError{Kind: FrameErrorPartial, Msg: "failed to read length prefix", Err: err}
	}

	size := binary.BigEndian.Uint32(lengthBuf[:])
	if size > MaxPayloadSize {
		return Record{}, &FrameError{
			Kind: FrameErrorTooLarge,
			Msg:  fmt.Sprintf("payload size %d exceeds maximum %d", size, MaxPayloadSize),
		}
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(d.r, payload); err != nil {
		return Record{}, &FrameError{Kind: FrameErrorPartial, Msg: "failed to read payload", Err: err}
	}

	var rec Record
	if err := msgpack.Unmarshal(payload, &rec); err != nil {
		return Record{}, &FrameError{Kind: FrameErrorDecode, Msg: "failed to decode record", Err: err}
	}
	return rec, nil
}

// ReadAll decodes every record in r. On error it returns the records read
// so far along with the error.
func ReadAll(r io.Reader) ([]Record, error) {
	dec := NewDecoder(r)
	var out []Record
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
