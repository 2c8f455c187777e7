// Package gorga converts and scales raw video frames with the Rockchip
// RGA 2D accelerator. It negotiates acceptable format/resolution pairs
// between pipeline neighbors and drives one synchronous blit per frame.
package gorga

// MapMode selects the access direction of a scoped host mapping.
type MapMode uint8

// Constants representing host mapping modes.
const (
	MapRead  = MapMode(iota + 1) // source frames are mapped for reading
	MapWrite                     // destination frames are mapped for writing
)

// Info describes the agreed stream parameters on one side of the stage.
type Info struct {
	Format PixelFormat // Negotiated pixel format.
	Width  uint        // Frame width in pixels.
	Height uint        // Frame height in pixels.
}

// Frame is one raw video frame borrowed from the buffer layer for the
// duration of a single operation.
type Frame interface {
	Format() PixelFormat                          // Returns the pixel format of the frame.
	Width() uint                                  // Returns the frame width in pixels.
	Height() uint                                 // Returns the frame height in pixels.
	Planes() uint                                 // Returns the number of pixel planes.
	Stride(plane uint) uint                       // Returns the byte stride of the given plane.
	PlaneOffset(plane uint) uint                  // Returns the byte offset of the plane in the backing memory.
	Blocks() uint                                 // Returns the number of discrete backing memory blocks.
	ExportHandle() (fd int, offset uint, ok bool) // Returns the device-exportable handle, if any.
	Map(mode MapMode) ([]byte, error)             // Acquires a scoped host mapping of the backing memory.
	Unmap()                                       // Releases one previously acquired mapping.
}

// Converter converts raw video frames between pixel formats and sizes.
// Calls on one Converter must be serialized by the caller.
type Converter interface {
	Start() error                 // Acquires the hardware context.
	SetInfo(in, out Info) error   // Validates and stores the negotiated format pair.
	Convert(src, dst Frame) error // Converts one frame; per-frame failures drop the frame only.
	SetCoreMask(CoreMask)         // Selects the scheduler core(s) for subsequent frames.
	Stop()                        // Releases the hardware context; idempotent.
}
