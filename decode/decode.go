// Package decode turns raw input bytes into text.
//
// Supported encodings, tried in order: UTF-8 with BOM, UTF-16 (LE/BE) with
// BOM, UTF-8, and Shift_JIS. Input valid in none of them is rejected with an
// *Error.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding labels reported by Detect.
const (
	LabelUTF8     = "UTF-8"
	LabelUTF16LE  = "UTF-16LE"
	LabelUTF16BE  = "UTF-16BE"
	LabelShiftJIS = "Shift_JIS"
)

// ErrUndecodable classifies input that no supported encoding accepts.
var ErrUndecodable = errors.New("input is not valid UTF-8 or Shift_JIS")

// Error reports a decoding failure.
type Error struct {
	// Tried lists the encodings attempted, in order.
	Tried []string
	// Err is the last decoder error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v (tried %v): %v", ErrUndecodable, e.Tried, e.Err)
	}
	return fmt.Sprintf("%v (tried %v)", ErrUndecodable, e.Tried)
}

// Is makes errors.Is(err, ErrUndecodable) hold for any *Error.
func (e *Error) Is(target error) bool { return target == ErrUndecodable }

func (e *Error) Unwrap() error { return e.Err }

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect decodes data and returns the text with the label of the encoding
// that accepted it.
func Detect(data []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		rest := data[len(bomUTF8):]
		if !utf8.Valid(rest) {
			return "", "", &Error{Tried: []string{LabelUTF8}}
		}
		return string(rest), LabelUTF8, nil
	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeUTF16(data, unicode.LittleEndian, LabelUTF16LE)
	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeUTF16(data, unicode.BigEndian, LabelUTF16BE)
	}

	if utf8.Valid(data) {
		return string(data), LabelUTF8, nil
	}

	text, err := decodeStrict(japanese.ShiftJIS, data)
	if err != nil {
		return "", "", &Error{Tried: []string{LabelUTF8, LabelShiftJIS}, Err: err}
	}
	return text, LabelShiftJIS, nil
}

func decodeUTF16(data []byte, endian unicode.Endianness, label string) (string, string, error) {
	text, err := decodeStrict(unicode.UTF16(endian, unicode.ExpectBOM), data)
	if err != nil {
		return "", "", &Error{Tried: []string{label}, Err: err}
	}
	return text, label, nil
}

// decodeStrict decodes with enc and fails when the decoder had to
// substitute U+FFFD, which none of the supported legacy encodings can
// produce from valid input.
func decodeStrict(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", errors.New("invalid byte sequence")
	}
	return string(out), nil
}
