// Package frame implements the raw video frame buffers the buffer layer
// lends to the conversion stage.
package frame

import (
	"errors"
	"fmt"

	"github.com/ugparu/gorga"
)

var errNoHostMemory = errors.New("frame memory is not host-mappable")

// Buffer is a raw video frame with its backing memory. The backing is
// either a device-exportable dmabuf, a host block, or a dmabuf that can
// additionally be mapped into host memory.
type Buffer struct {
	format   gorga.PixelFormat
	width    uint
	height   uint
	strides  []uint
	offsets  []uint
	data     []byte
	fd       int
	fdOffset uint
	maps     int
}

// NewHostBuffer allocates a host-backed frame with a tight plane layout.
func NewHostBuffer(format gorga.PixelFormat, width, height uint) *Buffer {
	strides, offsets, size := planeLayout(format, width, height)
	return &Buffer{
		format:   format,
		width:    width,
		height:   height,
		strides:  strides,
		offsets:  offsets,
		data:     make([]byte, size),
		fd:       -1,
		fdOffset: 0,
		maps:     0,
	}
}

// FromHost wraps externally laid out host memory as a frame. The strides
// and offsets slices must carry one entry per plane.
func FromHost(format gorga.PixelFormat, width, height uint,
	strides, offsets []uint, data []byte) (*Buffer, error) {
	planes := format.PlaneCount()
	if uint(len(strides)) != planes || uint(len(offsets)) != planes {
		return nil, fmt.Errorf("expected %d plane strides and offsets, got %d and %d",
			planes, len(strides), len(offsets))
	}
	return &Buffer{
		format:   format,
		width:    width,
		height:   height,
		strides:  strides,
		offsets:  offsets,
		data:     data,
		fd:       -1,
		fdOffset: 0,
		maps:     0,
	}, nil
}

// NewDMABuf wraps a device-exportable buffer as a frame with a tight
// plane layout. A non-nil data slice makes the buffer additionally
// host-mappable, offset is the byte position of the frame inside the
// exported buffer.
func NewDMABuf(format gorga.PixelFormat, width, height uint,
	fd int, offset uint, data []byte) *Buffer {
	strides, offsets, _ := planeLayout(format, width, height)
	return &Buffer{
		format:   format,
		width:    width,
		height:   height,
		strides:  strides,
		offsets:  offsets,
		data:     data,
		fd:       fd,
		fdOffset: offset,
		maps:     0,
	}
}

// Format returns the pixel format of the frame.
func (b *Buffer) Format() gorga.PixelFormat {
	return b.format
}

// Width returns the frame width in pixels.
func (b *Buffer) Width() uint {
	return b.width
}

// Height returns the frame height in pixels.
func (b *Buffer) Height() uint {
	return b.height
}

// Planes returns the number of pixel planes.
func (b *Buffer) Planes() uint {
	return uint(len(b.strides))
}

// Stride returns the byte stride of the given plane.
func (b *Buffer) Stride(plane uint) uint {
	return b.strides[plane]
}

// PlaneOffset returns the byte offset of the plane in the backing memory.
func (b *Buffer) PlaneOffset(plane uint) uint {
	return b.offsets[plane]
}

// Blocks returns the number of discrete backing memory blocks.
func (b *Buffer) Blocks() uint {
	return 1
}

// ExportHandle returns the dmabuf descriptor of the backing memory, if
// the frame is device-exportable.
func (b *Buffer) ExportHandle() (fd int, offset uint, ok bool) {
	if b.fd < 0 {
		return -1, 0, false
	}
	return b.fd, b.fdOffset, true
}

// Map acquires a scoped host mapping of the backing memory. Every
// successful Map must be matched by exactly one Unmap.
func (b *Buffer) Map(_ gorga.MapMode) ([]byte, error) {
	if b.data == nil {
		return nil, errNoHostMemory
	}
	b.maps++
	return b.data, nil
}

// Unmap releases one previously acquired mapping.
func (b *Buffer) Unmap() {
	if b.maps > 0 {
		b.maps--
	}
}

// ActiveMaps returns the number of currently held host mappings.
func (b *Buffer) ActiveMaps() int {
	return b.maps
}

// String returns a compact description of the frame for logging.
func (b *Buffer) String() string {
	return fmt.Sprintf("%s %dx%d", b.format, b.width, b.height)
}

// planeLayout computes tight per-plane byte strides and offsets and the
// total byte size of a frame.
func planeLayout(format gorga.PixelFormat, width, height uint) (strides, offsets []uint, size uint) {
	chromaW := (width + 1) / 2
	chromaH := (height + 1) / 2

	switch format {
	case gorga.I420, gorga.YV12:
		strides = []uint{width, chromaW, chromaW}
		offsets = []uint{0, width * height, width*height + chromaW*chromaH}
		size = width*height + 2*chromaW*chromaH
	case gorga.Y42B:
		strides = []uint{width, chromaW, chromaW}
		offsets = []uint{0, width * height, width*height + chromaW*height}
		size = width*height + 2*chromaW*height
	case gorga.NV12, gorga.NV21:
		strides = []uint{width, width}
		offsets = []uint{0, width * height}
		size = width*height + width*chromaH
	case gorga.NV16, gorga.NV61:
		strides = []uint{width, width}
		offsets = []uint{0, width * height}
		size = 2 * width * height
	case gorga.NV12_10LE40:
		stride := (width*10 + 7) / 8 //nolint:mnd
		strides = []uint{stride, stride}
		offsets = []uint{0, stride * height}
		size = stride*height + stride*chromaH
	default:
		stride := width * format.BytesPerPixel()
		strides = []uint{stride}
		offsets = []uint{0}
		size = stride * height
	}
	return strides, offsets, size
}
