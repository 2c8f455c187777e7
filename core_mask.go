package gorga

import "fmt"

// CoreMask selects which RGA scheduler core(s) process a blit job.
// It is a bit-flag set; unknown bits are passed through to the
// accelerator uninterpreted.
type CoreMask uint32

// Constants representing RGA scheduler cores and their named combinations.
const (
	CoreAuto      CoreMask = 0                             // scheduler decides
	CoreRGA3Core0 CoreMask = 1 << 0                        // RGA3 core 0
	CoreRGA3Core1 CoreMask = 1 << 1                        // RGA3 core 1
	CoreRGA2Core0 CoreMask = 1 << 2                        // RGA2 core 0
	CoreRGA3      CoreMask = CoreRGA3Core0 | CoreRGA3Core1 // both RGA3 cores
	CoreRGA2      CoreMask = CoreRGA2Core0                 // RGA2 alone
)

// String returns the symbolic name of a CoreMask.
func (cm CoreMask) String() string {
	switch cm {
	case CoreAuto:
		return "auto"
	case CoreRGA3Core0:
		return "rga3_core0"
	case CoreRGA3Core1:
		return "rga3_core1"
	case CoreRGA2Core0:
		return "rga2_core0"
	case CoreRGA3:
		return "rga3"
	}
	return fmt.Sprintf("core_mask(0x%x)", uint32(cm))
}

// ParseCoreMask converts a symbolic configuration value to a CoreMask.
func ParseCoreMask(value string) (CoreMask, error) {
	switch value {
	case "auto", "":
		return CoreAuto, nil
	case "rga3_core0":
		return CoreRGA3Core0, nil
	case "rga3_core1":
		return CoreRGA3Core1, nil
	case "rga2_core0":
		return CoreRGA2Core0, nil
	case "rga3":
		return CoreRGA3, nil
	case "rga2":
		return CoreRGA2, nil
	}
	return CoreAuto, fmt.Errorf("unknown core mask %q", value)
}
