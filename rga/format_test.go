package rga

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ugparu/gorga"
)

func TestAllDeclaredFormatsMap(t *testing.T) {
	for _, pf := range gorga.SupportedFormats() {
		require.NotEqual(t, FormatUnknown, ToSurfaceFormat(pf), "format %s", pf)
	}
}

func TestNoCrossFamilyCollisions(t *testing.T) {
	seen := map[SurfaceFormat]gorga.PixelFormat{}
	for _, pf := range gorga.SupportedFormats() {
		sf := ToSurfaceFormat(pf)
		if prev, ok := seen[sf]; ok {
			require.Fail(t, "surface format collision", "%s and %s both map to 0x%x", prev, pf, int32(sf))
		}
		seen[sf] = pf
	}
}

func TestUnknownFormatMapsToUnknown(t *testing.T) {
	require.Equal(t, FormatUnknown, ToSurfaceFormat(gorga.PixelFormat(0)))
	require.Equal(t, FormatUnknown, ToSurfaceFormat(gorga.PixelFormat(200)))
}

func TestTenBitGatedByExtendedFormats(t *testing.T) {
	require.Equal(t, FormatUnknown, ToSurfaceFormat(gorga.NV12_10LE40))

	gorga.ExtendedFormats = true
	defer func() { gorga.ExtendedFormats = false }()
	require.Equal(t, FormatYCbCr420SP10, ToSurfaceFormat(gorga.NV12_10LE40))
}

func TestPixelStrideFamilies(t *testing.T) {
	require.Equal(t, uint(4), FormatRGBA8888.PixelStride())
	require.Equal(t, uint(4), FormatBGRX8888.PixelStride())
	require.Equal(t, uint(3), FormatBGR888.PixelStride())
	require.Equal(t, uint(2), FormatRGB565.PixelStride())
	require.Equal(t, uint(2), FormatRGBA5551.PixelStride())
	require.Equal(t, uint(1), FormatYCbCr420SP.PixelStride())
	require.Equal(t, uint(1), FormatYCrCb422P.PixelStride())
	require.Equal(t, uint(0), FormatUnknown.PixelStride())
}

func TestIsYUV(t *testing.T) {
	require.True(t, FormatYCbCr420P.IsYUV())
	require.True(t, FormatYCrCb422SP.IsYUV())
	require.False(t, FormatRGBA8888.IsYUV())
	require.False(t, FormatRGB565.IsYUV())
}
