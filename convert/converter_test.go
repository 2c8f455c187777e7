package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ugparu/gorga"
	"github.com/ugparu/gorga/caps"
	"github.com/ugparu/gorga/frame"
	"github.com/ugparu/gorga/rga"
	"github.com/ugparu/gorga/utils"
)

// recordingBlitter wraps another blitter and records calls, optionally
// failing a number of blits first.
type recordingBlitter struct {
	inner     rga.Blitter
	failBlits int
	blits     int
	cores     []gorga.CoreMask
	setCores  []gorga.CoreMask
	inits     int
	deinits   int
}

func newRecordingBlitter(failBlits int) *recordingBlitter {
	return &recordingBlitter{inner: rga.NewSoftware(), failBlits: failBlits}
}

func (rb *recordingBlitter) Init() error {
	rb.inits++
	return rb.inner.Init()
}

func (rb *recordingBlitter) Deinit() {
	rb.deinits++
	rb.inner.Deinit()
}

func (rb *recordingBlitter) SetCore(mask gorga.CoreMask) error {
	rb.setCores = append(rb.setCores, mask)
	return rb.inner.SetCore(mask)
}

func (rb *recordingBlitter) Blit(src, dst *rga.Descriptor) error {
	rb.blits++
	rb.cores = append(rb.cores, src.Core, dst.Core)
	if rb.blits <= rb.failBlits {
		return &utils.HardwareFailureError{Code: -7}
	}
	return rb.inner.Blit(src, dst)
}

func startedConverter(t *testing.T, blitter rga.Blitter) *Converter {
	t.Helper()
	cnv := New(blitter)
	require.NoError(t, cnv.SetInfo(
		gorga.Info{Format: gorga.NV12, Width: 1920, Height: 1080},
		gorga.Info{Format: gorga.RGBA, Width: 640, Height: 480},
	))
	require.NoError(t, cnv.Start())
	return cnv
}

func TestSetInfoValidatesBothSides(t *testing.T) {
	cnv := New(rga.NewSoftware())
	fmtErr := &utils.UnsupportedFormatError{}

	err := cnv.SetInfo(
		gorga.Info{Format: gorga.NV12_10LE40, Width: 1920, Height: 1080},
		gorga.Info{Format: gorga.RGBA, Width: 640, Height: 480},
	)
	require.ErrorAs(t, err, &fmtErr)

	err = cnv.SetInfo(
		gorga.Info{Format: gorga.NV12, Width: 1920, Height: 1080},
		gorga.Info{Format: gorga.NV12_10LE40, Width: 640, Height: 480},
	)
	require.ErrorAs(t, err, &fmtErr)

	require.NoError(t, cnv.SetInfo(
		gorga.Info{Format: gorga.NV12, Width: 1920, Height: 1080},
		gorga.Info{Format: gorga.RGBA, Width: 640, Height: 480},
	))
}

func TestConvertRequiresStartAndInfo(t *testing.T) {
	cnv := New(rga.NewSoftware())
	src := frame.NewHostBuffer(gorga.NV12, 1920, 1080)
	dst := frame.NewHostBuffer(gorga.RGBA, 640, 480)

	require.ErrorIs(t, cnv.Convert(src, dst), errNotStarted)

	require.NoError(t, cnv.Start())
	defer cnv.Stop()
	require.ErrorIs(t, cnv.Convert(src, dst), errNotConfigured)
}

func TestConvertEndToEnd(t *testing.T) {
	cnv := startedConverter(t, rga.NewSoftware())
	defer cnv.Stop()

	src := frame.NewHostBuffer(gorga.NV12, 1920, 1080)
	dst := frame.NewHostBuffer(gorga.RGBA, 640, 480)

	require.NoError(t, cnv.Convert(src, dst))
	require.Zero(t, src.ActiveMaps())
	require.Zero(t, dst.ActiveMaps())
}

func TestConvertAppliesCoreMask(t *testing.T) {
	rb := newRecordingBlitter(0)
	cnv := New(rb)
	cnv.SetCoreMask(gorga.CoreRGA3)
	require.NoError(t, cnv.SetInfo(
		gorga.Info{Format: gorga.NV12, Width: 1920, Height: 1080},
		gorga.Info{Format: gorga.RGBA, Width: 640, Height: 480},
	))
	require.NoError(t, cnv.Start())
	defer cnv.Stop()

	require.Equal(t, []gorga.CoreMask{gorga.CoreRGA3}, rb.setCores)

	src := frame.NewHostBuffer(gorga.NV12, 1920, 1080)
	dst := frame.NewHostBuffer(gorga.RGBA, 640, 480)
	require.NoError(t, cnv.Convert(src, dst))
	require.Equal(t, []gorga.CoreMask{gorga.CoreRGA3, gorga.CoreRGA3}, rb.cores)
}

func TestConvertRecoversAfterHardwareFailure(t *testing.T) {
	rb := newRecordingBlitter(1)
	cnv := startedConverter(t, rb)
	defer cnv.Stop()

	src := frame.NewHostBuffer(gorga.NV12, 1920, 1080)
	dst := frame.NewHostBuffer(gorga.RGBA, 640, 480)

	hwErr := &utils.HardwareFailureError{}
	require.ErrorAs(t, cnv.Convert(src, dst), &hwErr)
	require.Equal(t, -7, hwErr.Code)
	require.Zero(t, src.ActiveMaps())
	require.Zero(t, dst.ActiveMaps())

	require.NoError(t, cnv.Convert(src, dst))
	require.Zero(t, src.ActiveMaps())
	require.Zero(t, dst.ActiveMaps())
}

func TestConvertInvalidMemoryDropsFrameOnly(t *testing.T) {
	cnv := startedConverter(t, rga.NewSoftware())
	defer cnv.Stop()

	bad := frame.NewDMABuf(gorga.NV12, 1920, 1080, 5, 4096, nil)
	dst := frame.NewHostBuffer(gorga.RGBA, 640, 480)

	memErr := &utils.InvalidMemoryError{}
	require.ErrorAs(t, cnv.Convert(bad, dst), &memErr)
	require.Zero(t, dst.ActiveMaps())

	good := frame.NewHostBuffer(gorga.NV12, 1920, 1080)
	require.NoError(t, cnv.Convert(good, dst))
}

func TestConvertReleasesSourceWhenDestinationFails(t *testing.T) {
	cnv := startedConverter(t, rga.NewSoftware())
	defer cnv.Stop()

	src := frame.NewHostBuffer(gorga.NV12, 1920, 1080)
	bad := frame.NewDMABuf(gorga.RGBA, 640, 480, 5, 4096, nil)

	require.Error(t, cnv.Convert(src, bad))
	require.Zero(t, src.ActiveMaps())
}

func TestStopIsIdempotent(t *testing.T) {
	rb := newRecordingBlitter(0)
	cnv := startedConverter(t, rb)

	cnv.Stop()
	cnv.Stop()
	require.Equal(t, 1, rb.deinits)

	require.Error(t, cnv.Start())
}

func TestNegotiateRejectsEmptyResult(t *testing.T) {
	cnv := New(rga.NewSoftware())

	in := caps.Caps{{
		Formats:   []gorga.PixelFormat{gorga.NV12},
		Width:     caps.IntRange{Min: 1, Max: 1920},
		Height:    caps.IntRange{Min: 1, Max: 1080},
		Framerate: caps.FullFramerateRange(),
		Features:  caps.FeatureSystemMemory,
	}}
	out, err := cnv.Negotiate(caps.TowardSource, in, caps.SourceTemplate())
	require.NoError(t, err)
	require.False(t, out.Empty())

	disjoint := caps.Caps{{
		Formats:   []gorga.PixelFormat{gorga.RGBA},
		Width:     caps.IntRange{Min: 5000, Max: 6000},
		Height:    caps.IntRange{Min: 5000, Max: 6000},
		Framerate: caps.FullFramerateRange(),
		Features:  caps.FeatureSystemMemory,
	}}
	cfgErr := &utils.ConfigurationRejectedError{}
	_, err = cnv.Negotiate(caps.TowardSource, in, disjoint)
	require.ErrorAs(t, err, &cfgErr)
}
