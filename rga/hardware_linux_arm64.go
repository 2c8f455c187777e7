//go:build linux && arm64

package rga

//#cgo CFLAGS: -I/usr/include/rockchip
//#cgo LDFLAGS: -lrga
//#include <rga/RgaApi.h>
//#include <rga/im2d.h>
import "C"
import (
	"sync"
	"unsafe"

	"github.com/ugparu/gorga"
	"github.com/ugparu/gorga/utils"
	"github.com/ugparu/gorga/utils/logger"
)

// The librga context is a process-wide singleton. Init and deinit are
// reference counted here so multiple pipeline instances in one process
// do not race the driver state.
var engine struct {
	mu   sync.Mutex
	refs int
}

type hardwareBlitter struct {
	inited bool
}

// NewHardware returns the librga-backed blitter.
func NewHardware() Blitter {
	return &hardwareBlitter{inited: false}
}

func (hb *hardwareBlitter) String() string {
	return "rga"
}

func (hb *hardwareBlitter) Init() error {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if hb.inited {
		return nil
	}
	if engine.refs == 0 {
		if ret := C.c_RkRgaInit(); ret < 0 {
			return &utils.HardwareFailureError{Code: int(ret)}
		}
		logger.Debug(hb, "Initialized RGA engine")
	}
	engine.refs++
	hb.inited = true
	return nil
}

func (hb *hardwareBlitter) Deinit() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if !hb.inited {
		return
	}
	hb.inited = false
	engine.refs--
	if engine.refs == 0 {
		C.c_RkRgaDeInit()
		logger.Debug(hb, "Released RGA engine")
	}
}

func (hb *hardwareBlitter) SetCore(mask gorga.CoreMask) error {
	if ret := C.imconfig(C.IM_CONFIG_SCHEDULER_CORE, C.uint64_t(mask)); ret != C.IM_STATUS_SUCCESS {
		return &utils.HardwareFailureError{Code: int(ret)}
	}
	return nil
}

func (hb *hardwareBlitter) Blit(src, dst *Descriptor) error {
	for _, d := range []*Descriptor{src, dst} {
		if d.FD < 0 && len(d.Data) == 0 {
			return &utils.InvalidMemoryError{}
		}
	}

	var srcInfo, dstInfo C.rga_info_t
	fillInfo(&srcInfo, src)
	fillInfo(&dstInfo, dst)

	if ret := C.c_RkRgaBlit(&srcInfo, &dstInfo, nil); ret < 0 {
		return &utils.HardwareFailureError{Code: int(ret)}
	}
	return nil
}

func fillInfo(info *C.rga_info_t, d *Descriptor) {
	if d.FD >= 0 {
		info.fd = C.int(d.FD)
	} else {
		info.fd = -1
		info.virAddr = unsafe.Pointer(&d.Data[0])
	}
	info.mmuFlag = 1
	info.core = C.int(d.Core)
	C.rga_set_rect(&info.rect,
		C.int(d.Rect.X), C.int(d.Rect.Y),
		C.int(d.Rect.Width), C.int(d.Rect.Height),
		C.int(d.Rect.HStride), C.int(d.Rect.VStride),
		C.int(d.Format))
}
