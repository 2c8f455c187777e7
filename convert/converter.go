// Package convert implements the RGA colorspace conversion and scaling
// stage: a Stopped/Started lifecycle around the blit engine and one
// synchronous conversion per frame.
package convert

import (
	"errors"
	"fmt"

	"github.com/ugparu/gorga"
	"github.com/ugparu/gorga/caps"
	"github.com/ugparu/gorga/rga"
	"github.com/ugparu/gorga/utils"
	"github.com/ugparu/gorga/utils/lifecycle"
	"github.com/ugparu/gorga/utils/logger"
)

var (
	errNotStarted    = errors.New("converter is not started")
	errNotConfigured = errors.New("stream format is not set")
)

// Converter converts raw video frames between pixel formats and sizes
// with the RGA engine. Calls on one Converter must be serialized by the
// caller.
type Converter struct {
	lifecycle.Manager[*Converter]
	blitter    rga.Blitter
	coreMask   gorga.CoreMask
	inInfo     gorga.Info
	outInfo    gorga.Info
	started    bool
	configured bool
}

// New creates a converter driving the given blit engine.
func New(blitter rga.Blitter) *Converter {
	cnv := &Converter{
		Manager:    nil,
		blitter:    blitter,
		coreMask:   gorga.CoreAuto,
		inInfo:     gorga.Info{},
		outInfo:    gorga.Info{},
		started:    false,
		configured: false,
	}
	cnv.Manager = lifecycle.NewDefaultManager(cnv)
	return cnv
}

// String returns a compact description of the converter for logging.
func (c *Converter) String() string {
	if !c.configured {
		return "rgaconvert"
	}
	return fmt.Sprintf("rgaconvert %s->%s", c.inInfo.Format, c.outInfo.Format)
}

// Close_ implements lifecycle.Instance by releasing the engine context.
func (c *Converter) Close_() {
	if c.started {
		c.blitter.Deinit()
		c.started = false
	}
}

// Start acquires the engine context and, for a non-auto core mask,
// applies it as a global scheduler hint.
func (c *Converter) Start() error {
	return c.Manager.Start(func(cnv *Converter) error {
		if err := cnv.blitter.Init(); err != nil {
			return err
		}
		if cnv.coreMask != gorga.CoreAuto {
			if err := cnv.blitter.SetCore(cnv.coreMask); err != nil {
				cnv.blitter.Deinit()
				return err
			}
		}
		cnv.started = true
		return nil
	})
}

// Stop releases the engine context. It is idempotent.
func (c *Converter) Stop() {
	c.Manager.Close()
}

// SetCoreMask selects the scheduler core(s) applied to subsequent frames.
// Unknown bits are passed through to the engine uninterpreted.
func (c *Converter) SetCoreMask(mask gorga.CoreMask) {
	c.coreMask = mask
}

// CoreMask returns the configured scheduler core selection.
func (c *Converter) CoreMask() gorga.CoreMask {
	return c.coreMask
}

// Negotiate derives the constraint set for the opposite side of the
// stage from one side's set, intersecting with filter when present. An
// empty result rejects the configuration.
func (c *Converter) Negotiate(direction caps.Direction, in, filter caps.Caps) (caps.Caps, error) {
	out := caps.Negotiate(direction, in, filter)
	logger.Debugf(c, "Negotiated %d descriptors toward %s", len(out), direction)
	if out.Empty() {
		return nil, &utils.ConfigurationRejectedError{}
	}
	return out, nil
}

// SetInfo validates the agreed format pair and fixes the stream
// geometry. Both sides must map to a hardware surface format; a failure
// here rejects the stream configuration before any frame flows.
func (c *Converter) SetInfo(in, out gorga.Info) error {
	if rga.ToSurfaceFormat(in.Format) == rga.FormatUnknown {
		logger.Infof(c, "Unsupported input format %s", in.Format)
		return &utils.UnsupportedFormatError{Format: in.Format.String()}
	}
	if rga.ToSurfaceFormat(out.Format) == rga.FormatUnknown {
		logger.Infof(c, "Unsupported output format %s", out.Format)
		return &utils.UnsupportedFormatError{Format: out.Format.String()}
	}

	c.inInfo = in
	c.outInfo = out
	c.configured = true
	logger.Debugf(c, "Stream set to %dx%d -> %dx%d", in.Width, in.Height, out.Width, out.Height)
	return nil
}

// Convert runs one blit converting src into dst. Failures are contained
// to the frame: scoped mappings are released on every path and the next
// call proceeds on a clean state.
func (c *Converter) Convert(src, dst gorga.Frame) error {
	if !c.started {
		return errNotStarted
	}
	if !c.configured {
		return errNotConfigured
	}

	srcDesc, err := rga.DescriptorFromFrame(src, gorga.MapRead)
	if err != nil {
		return err
	}
	defer srcDesc.Release()

	dstDesc, err := rga.DescriptorFromFrame(dst, gorga.MapWrite)
	if err != nil {
		return err
	}
	defer dstDesc.Release()

	srcDesc.Core = c.coreMask
	dstDesc.Core = c.coreMask

	if err = c.blitter.Blit(srcDesc, dstDesc); err != nil {
		logger.Warningf(c, "Failed to blit: %v", err)
		hwErr := &utils.HardwareFailureError{}
		if !errors.As(err, &hwErr) {
			hwErr = &utils.HardwareFailureError{Code: -1}
		}
		return hwErr
	}
	return nil
}
