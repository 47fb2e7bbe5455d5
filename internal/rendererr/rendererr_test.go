package rendererr

import (
	"errors"
	"testing"
)

func TestMeasurementInitErrorUnwraps(t *testing.T) {
	cause := errors.New("no font backend")
	err := NewMeasurementInitError(cause)
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should find wrapped cause")
	}
	if !IsMeasurementInit(err) {
		t.Errorf("IsMeasurementInit = false, want true")
	}
	if IsSurfaceError(err) {
		t.Errorf("IsSurfaceError = true, want false")
	}
}

func TestSurfaceErrorUnwraps(t *testing.T) {
	cause := errors.New("out of memory")
	err := NewSurfaceError("drawImage", cause)
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should find wrapped cause")
	}
	if !IsSurfaceError(err) {
		t.Errorf("IsSurfaceError = false, want true")
	}
}
