package gorga

// PixelFormat represents the logical layout of a raw video frame.
type PixelFormat uint8

// Constants representing supported raw video pixel formats.
const (
	I420        = PixelFormat(iota + 1) // planar 4:2:0 Y/Cb/Cr
	YV12                                // planar 4:2:0 Y/Cr/Cb
	NV12                                // semi-planar 4:2:0 Y/CbCr
	NV21                                // semi-planar 4:2:0 Y/CrCb
	NV12_10LE40                         // semi-planar 4:2:0 10-bit packed
	Y42B                                // planar 4:2:2 Y/Cb/Cr
	NV16                                // semi-planar 4:2:2 Y/CbCr
	NV61                                // semi-planar 4:2:2 Y/CrCb
	RGB16                               // packed RGB 5:6:5, 16 bits
	RGB15                               // packed RGB 5:5:5, 16 bits
	BGR                                 // packed BGR, 24 bits
	RGB                                 // packed RGB, 24 bits
	BGRA                                // packed BGRA, 32 bits
	RGBA                                // packed RGBA, 32 bits
	BGRx                                // packed BGRX, 32 bits, X ignored
	RGBx                                // packed RGBX, 32 bits, X ignored
)

// ExtendedFormats enables 10-bit semi-planar support in the declared
// format set. It mirrors a build-time switch of the accelerator userspace:
// only firmwares with 10-bit support should turn it on.
var ExtendedFormats = false

// String returns the human-readable string representation of a PixelFormat.
func (pf PixelFormat) String() string {
	switch pf {
	case I420:
		return "I420"
	case YV12:
		return "YV12"
	case NV12:
		return "NV12"
	case NV21:
		return "NV21"
	case NV12_10LE40:
		return "NV12_10LE40"
	case Y42B:
		return "Y42B"
	case NV16:
		return "NV16"
	case NV61:
		return "NV61"
	case RGB16:
		return "RGB16"
	case RGB15:
		return "RGB15"
	case BGR:
		return "BGR"
	case RGB:
		return "RGB"
	case BGRA:
		return "BGRA"
	case RGBA:
		return "RGBA"
	case BGRx:
		return "BGRx"
	case RGBx:
		return "RGBx"
	}
	return "UNKNOWN"
}

// IsYUV returns true if the PixelFormat is a chroma-subsampled YUV format.
func (pf PixelFormat) IsYUV() bool {
	switch pf {
	case I420, YV12, NV12, NV21, NV12_10LE40, Y42B, NV16, NV61:
		return true
	default:
		return false
	}
}

// PlaneCount returns the number of planes a frame of this format carries.
func (pf PixelFormat) PlaneCount() uint {
	switch pf {
	case I420, YV12, Y42B:
		return 3 //nolint:mnd
	case NV12, NV21, NV12_10LE40, NV16, NV61:
		return 2 //nolint:mnd
	default:
		return 1
	}
}

// BytesPerPixel returns the packed pixel width in bytes for RGB formats
// and 1 for planar and semi-planar YUV formats (luma plane).
func (pf PixelFormat) BytesPerPixel() uint {
	switch pf {
	case BGRA, RGBA, BGRx, RGBx:
		return 4 //nolint:mnd
	case BGR, RGB:
		return 3 //nolint:mnd
	case RGB16, RGB15:
		return 2 //nolint:mnd
	default:
		return 1
	}
}

// SupportedFormats returns the declared logical format set, identical on
// both sides of the stage. NV12_10LE40 is included only with ExtendedFormats.
func SupportedFormats() []PixelFormat {
	formats := []PixelFormat{
		I420, YV12, NV12, NV21,
		Y42B, NV16, NV61,
		RGB16, RGB15, BGR, RGB,
		BGRA, RGBA, BGRx, RGBx,
	}
	if ExtendedFormats {
		formats = append(formats, NV12_10LE40)
	}
	return formats
}
