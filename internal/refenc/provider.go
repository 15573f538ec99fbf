// Package refenc produces trusted reference matrices by delegating to an
// independent, widely deployed QR encoder (github.com/skip2/go-qrcode).
package refenc

import (
	"fmt"

	qrc "github.com/skip2/go-qrcode"

	"qrconform/internal/matrix"
)

// Provider produces a reference matrix for a (payload, EC level) pair.
// Implementations must select the smallest version whose capacity fits
// the payload and emit no quiet-zone border.
type Provider interface {
	Encode(payload string, level matrix.ECLevel) (*matrix.Matrix, error)
}

// ReferenceEncodingError indicates the reference encoder rejected an
// input, typically because the payload exceeds capacity at the requested
// level even at version 40. Fatal to the affected case only.
type ReferenceEncodingError struct {
	Payload string
	Level   matrix.ECLevel
	Err     error
}

func (e *ReferenceEncodingError) Error() string {
	return fmt.Sprintf("reference encoder rejected %d-byte payload at level %s: %v", len(e.Payload), e.Level, e.Err)
}

func (e *ReferenceEncodingError) Unwrap() error {
	return e.Err
}

// GoQR is the Provider backed by skip2/go-qrcode.
type GoQR struct{}

// Encode encodes the payload with automatic version selection and the
// quiet-zone border disabled, so the returned matrix is pixel-addressable
// from (0,0).
func (GoQR) Encode(payload string, level matrix.ECLevel) (*matrix.Matrix, error) {
	code, err := qrc.New(payload, recoveryLevel(level))
	if err != nil {
		return nil, &ReferenceEncodingError{Payload: payload, Level: level, Err: err}
	}
	code.DisableBorder = true

	m, err := matrix.New(code.Bitmap())
	if err != nil {
		return nil, &ReferenceEncodingError{Payload: payload, Level: level, Err: err}
	}
	return m, nil
}

// Probe verifies the encoder is usable before the suite starts. A failure
// here is a setup error for the whole run, not a per-case failure.
func (g GoQR) Probe() error {
	if _, err := g.Encode("PROBE", matrix.ECMedium); err != nil {
		return fmt.Errorf("reference encoder unusable: %w", err)
	}
	return nil
}

// recoveryLevel maps the standard L/M/Q/H levels onto skip2/go-qrcode's
// Low/Medium/High/Highest naming.
func recoveryLevel(level matrix.ECLevel) qrc.RecoveryLevel {
	switch level {
	case matrix.ECLow:
		return qrc.Low
	case matrix.ECMedium:
		return qrc.Medium
	case matrix.ECQuartile:
		return qrc.High
	case matrix.ECHigh:
		return qrc.Highest
	default:
		return qrc.Medium
	}
}
