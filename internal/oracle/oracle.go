package oracle

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"qrconform/internal/matrix"
)

// Status is the verdict of one decode check.
type Status string

const (
	// StatusPassed means the decoded text equals the payload byte-exact.
	StatusPassed Status = "passed"

	// StatusFailed means a symbol decoded to the wrong payload.
	StatusFailed Status = "failed"

	// StatusNoResult means zero symbols decoded from the raster.
	StatusNoResult Status = "no-result"

	// StatusSkipped means the decoder is unavailable. Absence of the
	// optional oracle reduces coverage, it never fails the suite.
	StatusSkipped Status = "skipped"
)

// Outcome is the result of round-tripping one matrix.
type Outcome struct {
	Status  Status
	Decoded string
	Note    string
}

// Failed reports whether the outcome counts against the suite.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed || o.Status == StatusNoResult
}

func (o Outcome) String() string {
	switch o.Status {
	case StatusPassed:
		return fmt.Sprintf("decode: OK (decoded %q)", o.Decoded)
	case StatusFailed:
		return fmt.Sprintf("decode: FAILED (decoded %q; %s)", o.Decoded, o.Note)
	case StatusNoResult:
		return fmt.Sprintf("decode: FAILED (%s)", o.Note)
	default:
		return fmt.Sprintf("decode: skipped (%s)", o.Note)
	}
}

// Oracle renders matrices and round-trips them through a Decoder. The
// capability is resolved once at suite start: an Oracle built without a
// decoder reports every check as skipped.
type Oracle struct {
	dec   Decoder
	scale int
}

// New builds an oracle around a decoder. A nil decoder yields an
// unavailable oracle.
func New(dec Decoder, scale int) *Oracle {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Oracle{dec: dec, scale: scale}
}

// Unavailable builds an oracle whose checks are always skipped.
func Unavailable() *Oracle {
	return &Oracle{}
}

// Available reports whether decode checks will actually run.
func (o *Oracle) Available() bool {
	return o.dec != nil
}

// Check renders m and compares the decoded text against payload under
// byte-exact string equality. When the texts differ only in Unicode
// normalization form the note says so; the verdict stays failed.
func (o *Oracle) Check(m *matrix.Matrix, payload string) Outcome {
	if !o.Available() {
		return Outcome{Status: StatusSkipped, Note: "decoder not available"}
	}

	img := Render(m, o.scale)
	text, found, err := o.dec.Decode(img)
	if err != nil {
		return Outcome{Status: StatusNoResult, Note: fmt.Sprintf("decoder error: %v", err)}
	}
	if !found {
		return Outcome{Status: StatusNoResult, Note: "no symbol found in rendered image"}
	}
	if text == payload {
		return Outcome{Status: StatusPassed, Decoded: text}
	}

	note := fmt.Sprintf("expected %q", payload)
	if norm.NFC.String(text) == norm.NFC.String(payload) {
		note = fmt.Sprintf("expected %q; texts differ only in unicode normalization", payload)
	}
	return Outcome{Status: StatusFailed, Decoded: text, Note: note}
}
