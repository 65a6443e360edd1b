// Package vdata decodes character-state payloads captured from the game
// client. A payload arrives with no header or file extension to identify its
// encoding: it may be a binary wrapper message, a bare binary state message,
// base64 text of the latter, or JSON of either shape. The decoder runs an
// ordered cascade of format attempts and returns the first match together
// with the format tag that produced it.
package vdata

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	apperrors "github.com/mod-analysis/pkg/errors"
	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/utils"
)

// Format identifies which decode attempt produced a result.
type Format string

const (
	// FormatBinaryWrapper is a binary wrapper message with the inner state present.
	FormatBinaryWrapper Format = "binary_wrapper"
	// FormatBinaryDirect is a bare binary state message.
	FormatBinaryDirect Format = "binary_direct"
	// FormatBase64 is base64 text of a bare binary state message.
	FormatBase64 Format = "base64"
	// FormatJSONDirect is JSON of the state message itself.
	FormatJSONDirect Format = "json_direct"
	// FormatJSONWrapper is JSON of the wrapper with the inner state present.
	FormatJSONWrapper Format = "json_wrapper"
)

// binaryAttempt tries one interpretation of a raw payload. ok is false when
// the payload does not match this format.
type binaryAttempt struct {
	format Format
	fn     func(data []byte) (*model.CharState, bool)
}

// textAttempt tries one interpretation of a UTF-8 text payload.
type textAttempt struct {
	format Format
	fn     func(text string) (*model.CharState, bool)
}

// The cascade is ordered from "most likely given typical capture tooling" to
// "most permissive". Each attempt fails only on structural parse failure;
// the first structurally-valid parse wins. In particular the binary direct
// attempt accepts any payload that merely parses, with no semantic check on
// the populated fields. That leniency matches the reference decoder this
// tool must stay drop-in compatible with.
var (
	binaryAttempts = []binaryAttempt{
		{FormatBinaryWrapper, attemptBinaryWrapper},
		{FormatBinaryDirect, attemptBinaryDirect},
	}

	textAttempts = []textAttempt{
		{FormatBase64, attemptBase64},
		{FormatJSONDirect, attemptJSONDirect},
		{FormatJSONWrapper, attemptJSONWrapper},
	}
)

// Decoder runs the format-detection cascade over raw payloads.
type Decoder struct {
	logger utils.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger for the decoder.
func WithLogger(logger utils.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDecoder creates a new Decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		logger: &utils.NullLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode runs the cascade over data and returns the decoded state and the
// format that matched.
//
// Errors: ErrNotText when data is neither a known binary schema nor valid
// UTF-8 (base64/JSON are never attempted on non-text input); ErrUnrecognized
// when valid text matches none of the known encodings. Per-attempt errors
// are deliberately not carried on the failure: an attempt either matches or
// it does not.
func (d *Decoder) Decode(data []byte) (*model.CharState, Format, error) {
	for _, at := range binaryAttempts {
		if cs, ok := at.fn(data); ok {
			d.logger.Debug("decoded %d bytes as %s", len(data), at.format)
			return cs, at.format, nil
		}
	}

	if !utf8.Valid(data) {
		return nil, "", apperrors.ErrNotText
	}
	text := strings.TrimSpace(string(data))

	for _, at := range textAttempts {
		if cs, ok := at.fn(text); ok {
			d.logger.Debug("decoded %d bytes as %s", len(data), at.format)
			return cs, at.format, nil
		}
	}

	return nil, "", apperrors.ErrUnrecognized
}

// DetectFormat runs the cascade and reports only the matching format.
func (d *Decoder) DetectFormat(data []byte) (Format, error) {
	_, format, err := d.Decode(data)
	return format, err
}

func attemptBinaryWrapper(data []byte) (*model.CharState, bool) {
	sc, err := UnmarshalSyncContainer(data)
	if err != nil || sc.VData == nil {
		return nil, false
	}
	return sc.VData, true
}

func attemptBinaryDirect(data []byte) (*model.CharState, bool) {
	cs, err := UnmarshalCharState(data)
	if err != nil {
		return nil, false
	}
	return cs, true
}

// attemptBase64 decodes strict base64 and binary-decodes the result as the
// bare state message. The standard decoder silently skips \r and \n, which
// strict mode does not cover, so payloads containing them are rejected here
// to keep "strict" meaning no non-alphabet bytes at all.
func attemptBase64(text string) (*model.CharState, bool) {
	if strings.ContainsAny(text, "\r\n") {
		return nil, false
	}
	raw, err := base64.StdEncoding.Strict().DecodeString(text)
	if err != nil {
		return nil, false
	}
	return attemptBinaryDirect(raw)
}

func attemptJSONDirect(text string) (*model.CharState, bool) {
	cs := &model.CharState{}
	if err := unmarshalStrictJSON(text, cs); err != nil {
		return nil, false
	}
	return cs, true
}

func attemptJSONWrapper(text string) (*model.CharState, bool) {
	sc := &model.SyncContainer{}
	if err := unmarshalStrictJSON(text, sc); err != nil || sc.VData == nil {
		return nil, false
	}
	return sc.VData, true
}
