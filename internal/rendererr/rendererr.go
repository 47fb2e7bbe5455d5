// Package rendererr provides the renderer's error types, per spec.md
// §7's three-tier policy: a fatal init error, silent per-item skips,
// and propagated raster-surface failures. Only the first and last are
// ever returned to a caller — silent skips have no error value here;
// the item is dropped without logging and the draw continues.
package rendererr

import "fmt"

// MeasurementInitError is returned once, at startup, if the shared
// measurement surface cannot be created. The renderer is unusable
// after this — there is no retry path.
type MeasurementInitError struct {
	Err error
}

func (e *MeasurementInitError) Error() string {
	return fmt.Sprintf("measurement surface init failed: %v", e.Err)
}

func (e *MeasurementInitError) Unwrap() error {
	return e.Err
}

// NewMeasurementInitError wraps the underlying cause of a measurement
// surface initialisation failure.
func NewMeasurementInitError(err error) *MeasurementInitError {
	return &MeasurementInitError{Err: err}
}

// SurfaceError wraps a failure from the raster surface itself (stroke,
// fill, drawImage). Per spec.md §7 these are never swallowed: they
// terminate the current draw.
type SurfaceError struct {
	Op  string
	Err error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("raster surface %s failed: %v", e.Op, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// NewSurfaceError wraps a raster surface operation's failure with the
// operation name for context.
func NewSurfaceError(op string, err error) *SurfaceError {
	return &SurfaceError{Op: op, Err: err}
}

// IsMeasurementInit reports whether err is a MeasurementInitError.
func IsMeasurementInit(err error) bool {
	_, ok := err.(*MeasurementInitError)
	return ok
}

// IsSurfaceError reports whether err is a SurfaceError.
func IsSurfaceError(err error) bool {
	_, ok := err.(*SurfaceError)
	return ok
}
