package gorga

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCoreMask(t *testing.T) {
	t.Parallel()

	cases := map[string]CoreMask{
		"auto":       CoreAuto,
		"":           CoreAuto,
		"rga3_core0": CoreRGA3Core0,
		"rga3_core1": CoreRGA3Core1,
		"rga2_core0": CoreRGA2Core0,
		"rga3":       CoreRGA3,
		"rga2":       CoreRGA2,
	}
	for value, want := range cases {
		got, err := ParseCoreMask(value)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseCoreMask("npu")
	require.Error(t, err)
}

func TestCoreMaskString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "auto", CoreAuto.String())
	require.Equal(t, "rga3", CoreRGA3.String())
	require.Equal(t, "rga2_core0", CoreRGA2.String())
	require.Equal(t, "core_mask(0x20)", CoreMask(0x20).String())
}

func TestCombinationMasks(t *testing.T) {
	t.Parallel()

	require.Equal(t, CoreRGA3Core0|CoreRGA3Core1, CoreRGA3)
	require.Equal(t, CoreRGA2Core0, CoreRGA2)
}
