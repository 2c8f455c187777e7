package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ugparu/gorga"
)

func TestHostBufferSemiPlanarLayout(t *testing.T) {
	t.Parallel()

	buf := NewHostBuffer(gorga.NV12, 1920, 1080)
	require.Equal(t, uint(2), buf.Planes())
	require.Equal(t, uint(1920), buf.Stride(0))
	require.Equal(t, uint(1920*1080), buf.PlaneOffset(1))
	require.Equal(t, uint(1), buf.Blocks())

	_, _, ok := buf.ExportHandle()
	require.False(t, ok)
}

func TestHostBufferPlanarLayout(t *testing.T) {
	t.Parallel()

	buf := NewHostBuffer(gorga.I420, 640, 480)
	require.Equal(t, uint(3), buf.Planes())
	require.Equal(t, uint(320), buf.Stride(1))
	require.Equal(t, uint(640*480), buf.PlaneOffset(1))
	require.Equal(t, uint(640*480+320*240), buf.PlaneOffset(2))
}

func TestHostBufferPackedLayout(t *testing.T) {
	t.Parallel()

	buf := NewHostBuffer(gorga.RGBA, 640, 480)
	require.Equal(t, uint(1), buf.Planes())
	require.Equal(t, uint(2560), buf.Stride(0))
}

func TestHostBuffer422Layout(t *testing.T) {
	t.Parallel()

	buf := NewHostBuffer(gorga.Y42B, 640, 480)
	require.Equal(t, uint(3), buf.Planes())
	require.Equal(t, uint(640*480), buf.PlaneOffset(1))
	require.Equal(t, uint(640*480+320*480), buf.PlaneOffset(2))
}

func TestMapUnmapBookkeeping(t *testing.T) {
	t.Parallel()

	buf := NewHostBuffer(gorga.NV12, 64, 48)
	require.Zero(t, buf.ActiveMaps())

	data, err := buf.Map(gorga.MapRead)
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Equal(t, 1, buf.ActiveMaps())

	buf.Unmap()
	require.Zero(t, buf.ActiveMaps())

	// Surplus unmaps do not underflow.
	buf.Unmap()
	require.Zero(t, buf.ActiveMaps())
}

func TestMapWithoutHostMemoryFails(t *testing.T) {
	t.Parallel()

	buf := NewDMABuf(gorga.NV12, 64, 48, 7, 0, nil)
	_, err := buf.Map(gorga.MapRead)
	require.Error(t, err)
	require.Zero(t, buf.ActiveMaps())

	fd, offset, ok := buf.ExportHandle()
	require.True(t, ok)
	require.Equal(t, 7, fd)
	require.Zero(t, offset)
}

func TestFromHostValidatesPlaneCount(t *testing.T) {
	t.Parallel()

	_, err := FromHost(gorga.NV12, 64, 48, []uint{64}, []uint{0}, make([]byte, 64*72))
	require.Error(t, err)

	buf, err := FromHost(gorga.NV12, 64, 48, []uint{64, 64}, []uint{0, 64 * 48}, make([]byte, 64*72))
	require.NoError(t, err)
	require.Equal(t, uint(64*48), buf.PlaneOffset(1))
}
