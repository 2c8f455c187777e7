// Package rga drives the Rockchip RGA 2D engine: it maps logical pixel
// formats to hardware surface formats, builds surface descriptors from
// frames and invokes blit jobs.
package rga

import "github.com/ugparu/gorga"

// SurfaceFormat is a hardware-native pixel layout code consumed by the
// blit engine. Values follow the librga surface format encoding.
type SurfaceFormat int32

// Constants representing RGA surface formats.
const (
	FormatRGBA8888     = SurfaceFormat(0x0 << 8)
	FormatRGBX8888     = SurfaceFormat(0x1 << 8)
	FormatRGB888       = SurfaceFormat(0x2 << 8)
	FormatBGRA8888     = SurfaceFormat(0x3 << 8)
	FormatRGB565       = SurfaceFormat(0x4 << 8)
	FormatRGBA5551     = SurfaceFormat(0x5 << 8)
	FormatRGBA4444     = SurfaceFormat(0x6 << 8)
	FormatBGR888       = SurfaceFormat(0x7 << 8)
	FormatYCbCr422SP   = SurfaceFormat(0x8 << 8)
	FormatYCbCr422P    = SurfaceFormat(0x9 << 8)
	FormatYCbCr420SP   = SurfaceFormat(0xa << 8)
	FormatYCbCr420P    = SurfaceFormat(0xb << 8)
	FormatYCrCb422SP   = SurfaceFormat(0xc << 8)
	FormatYCrCb422P    = SurfaceFormat(0xd << 8)
	FormatYCrCb420SP   = SurfaceFormat(0xe << 8)
	FormatYCrCb420P    = SurfaceFormat(0xf << 8)
	FormatBGRX8888     = SurfaceFormat(0x10 << 8)
	FormatYCbCr420SP10 = SurfaceFormat(0x20 << 8)
	FormatUnknown      = SurfaceFormat(0x100 << 8)
)

// surfaceFormats associates every supported logical pixel format with
// its hardware surface format.
var surfaceFormats = map[gorga.PixelFormat]SurfaceFormat{
	gorga.I420:        FormatYCbCr420P,
	gorga.YV12:        FormatYCrCb420P,
	gorga.NV12:        FormatYCbCr420SP,
	gorga.NV21:        FormatYCrCb420SP,
	gorga.NV12_10LE40: FormatYCbCr420SP10,
	gorga.Y42B:        FormatYCbCr422P,
	gorga.NV16:        FormatYCbCr422SP,
	gorga.NV61:        FormatYCrCb422SP,
	gorga.RGB16:       FormatRGB565,
	gorga.RGB15:       FormatRGBA5551,
	gorga.BGR:         FormatBGR888,
	gorga.RGB:         FormatRGB888,
	gorga.BGRA:        FormatBGRA8888,
	gorga.RGBA:        FormatRGBA8888,
	gorga.BGRx:        FormatBGRX8888,
	gorga.RGBx:        FormatRGBX8888,
}

// ToSurfaceFormat maps a logical pixel format to its hardware surface
// format, returning FormatUnknown for unmapped inputs.
func ToSurfaceFormat(format gorga.PixelFormat) SurfaceFormat {
	if format == gorga.NV12_10LE40 && !gorga.ExtendedFormats {
		return FormatUnknown
	}
	if sf, ok := surfaceFormats[format]; ok {
		return sf
	}
	return FormatUnknown
}

// PixelStride returns the byte width of one pixel for the surface format
// family: 4 for 32-bit RGBA, 3 for 24-bit RGB, 2 for 16-bit packed RGB
// and 1 for the YUV families. Zero is returned for unknown formats.
func (sf SurfaceFormat) PixelStride() uint {
	switch sf {
	case FormatRGBA8888, FormatBGRA8888, FormatRGBX8888, FormatBGRX8888:
		return 4 //nolint:mnd
	case FormatRGB888, FormatBGR888:
		return 3 //nolint:mnd
	case FormatRGB565, FormatRGBA5551, FormatRGBA4444:
		return 2 //nolint:mnd
	case FormatYCbCr420P, FormatYCrCb420P, FormatYCbCr420SP, FormatYCrCb420SP,
		FormatYCbCr422P, FormatYCrCb422P, FormatYCbCr422SP, FormatYCrCb422SP,
		FormatYCbCr420SP10:
		return 1
	default:
		return 0
	}
}

// IsYUV returns true for chroma-subsampled surface formats, which require
// even image dimensions.
func (sf SurfaceFormat) IsYUV() bool {
	switch sf {
	case FormatYCbCr420P, FormatYCrCb420P, FormatYCbCr420SP, FormatYCrCb420SP,
		FormatYCbCr422P, FormatYCrCb422P, FormatYCbCr422SP, FormatYCrCb422SP,
		FormatYCbCr420SP10:
		return true
	default:
		return false
	}
}
