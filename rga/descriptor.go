package rga

import (
	"github.com/ugparu/gorga"
	"github.com/ugparu/gorga/utils"
)

// Rect is the image geometry of one surface: origin, size and strides.
// HStride is held in pixel units once normalized, VStride in rows.
type Rect struct {
	X, Y          uint
	Width, Height uint
	HStride       uint
	VStride       uint
}

// Descriptor describes one surface of a blit job. The memory reference
// is exactly one of FD (device-exportable handle) and Data (scoped host
// mapping). Descriptors live for a single convert call.
type Descriptor struct {
	Rect   Rect
	Format SurfaceFormat
	FD     int
	Data   []byte
	Core   gorga.CoreMask

	frame    gorga.Frame
	released bool
}

// Release returns the scoped host mapping taken during descriptor
// construction, if any. It is safe to call more than once and must be
// called on every exit path of the enclosing per-frame operation.
func (d *Descriptor) Release() {
	if d.frame != nil && !d.released {
		d.frame.Unmap()
		d.released = true
	}
}

// DescriptorFromFrame builds the surface descriptor for one frame.
// It resolves the hardware surface format, normalizes geometry and
// selects the zero-copy handle or a scoped host mapping under mode.
func DescriptorFromFrame(f gorga.Frame, mode gorga.MapMode) (*Descriptor, error) {
	format := ToSurfaceFormat(f.Format())
	if format == FormatUnknown {
		return nil, &utils.UnsupportedFormatError{Format: f.Format().String()}
	}

	width := f.Width()
	height := f.Height()
	if format.IsYUV() {
		// The engine requires yuv image rects aligned to 2.
		width &^= 1
		height &^= 1
	}

	hstride := f.Stride(0)
	if hstride == 0 {
		return nil, &utils.InvalidMemoryError{}
	}
	var vstride uint
	if f.Planes() == 1 {
		vstride = f.Height()
	} else {
		vstride = f.PlaneOffset(1) / hstride
	}

	// A byte stride covering at least one row of pixels is converted to
	// pixel units; anything smaller is taken as already normalized.
	if pixelStride := format.PixelStride(); hstride/pixelStride >= width {
		hstride /= pixelStride
	}

	d := &Descriptor{
		Rect: Rect{
			X:       0,
			Y:       0,
			Width:   width,
			Height:  height,
			HStride: hstride,
			VStride: vstride,
		},
		Format:   format,
		FD:       -1,
		Data:     nil,
		Core:     gorga.CoreAuto,
		frame:    nil,
		released: false,
	}

	// Zero-copy needs a single device-exportable block holding the whole
	// frame from offset zero.
	if f.Blocks() == 1 {
		if fd, offset, ok := f.ExportHandle(); ok && offset == 0 {
			d.FD = fd
		}
	}

	if d.FD < 0 {
		data, err := f.Map(mode)
		if err != nil {
			return nil, &utils.InvalidMemoryError{}
		}
		d.Data = data
		d.frame = f
	}

	return d, nil
}
