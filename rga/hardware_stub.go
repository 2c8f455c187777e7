//go:build !linux || !arm64

package rga

import (
	"errors"

	"github.com/ugparu/gorga"
)

var errRGANotSupported = errors.New("rga blitter is only supported on linux/arm64")

type hardwareBlitter struct{}

// NewHardware returns a dummy blitter implementation for non-arm64
// builds. It satisfies Blitter so packages can compile on other
// architectures; use NewSoftware for a working fallback.
func NewHardware() Blitter {
	return &hardwareBlitter{}
}

func (*hardwareBlitter) Init() error {
	return errRGANotSupported
}

func (*hardwareBlitter) Deinit() {}

func (*hardwareBlitter) SetCore(_ gorga.CoreMask) error {
	return errRGANotSupported
}

func (*hardwareBlitter) Blit(_, _ *Descriptor) error {
	return errRGANotSupported
}
