package rga

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/ugparu/gorga"
	"github.com/ugparu/gorga/utils"
)

var errNeedMappedMemory = errors.New("software blitter requires host-mapped surfaces")

// softwareBlitter converts and scales surfaces on the CPU. It decodes
// the source surface to RGBA, scales with a bilinear kernel and encodes
// into the destination surface format.
type softwareBlitter struct{}

// NewSoftware returns the pure-Go blitter. It runs on any platform and
// accepts the same jobs as the hardware engine except 10-bit surfaces,
// but only on host-mapped memory.
func NewSoftware() Blitter {
	return &softwareBlitter{}
}

func (*softwareBlitter) Init() error {
	return nil
}

func (*softwareBlitter) Deinit() {}

// SetCore accepts any mask: core selection is a hardware scheduling hint
// with no software meaning.
func (*softwareBlitter) SetCore(_ gorga.CoreMask) error {
	return nil
}

func (sb *softwareBlitter) Blit(src, dst *Descriptor) error {
	if len(src.Data) == 0 || len(dst.Data) == 0 {
		return errNeedMappedMemory
	}
	for _, d := range []*Descriptor{src, dst} {
		if span, ok := surfaceSpan(d); ok && span > len(d.Data) {
			return &utils.InvalidMemoryError{}
		}
	}

	srcImg, err := decodeSurface(src)
	if err != nil {
		return err
	}

	dstImg := image.NewRGBA(image.Rect(0, 0, int(dst.Rect.Width), int(dst.Rect.Height)))
	draw.ApproxBiLinear.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)

	return encodeSurface(dst, dstImg)
}

// packedOrder returns the byte indexes of the red, green, blue and alpha
// channels inside one packed pixel. An alpha index of -1 marks formats
// without (or with ignored) alpha.
func packedOrder(format SurfaceFormat) (ri, gi, bi, ai int, ok bool) {
	switch format {
	case FormatRGBA8888:
		return 0, 1, 2, 3, true
	case FormatBGRA8888:
		return 2, 1, 0, 3, true
	case FormatRGBX8888:
		return 0, 1, 2, -1, true
	case FormatBGRX8888:
		return 2, 1, 0, -1, true
	case FormatRGB888:
		return 0, 1, 2, -1, true
	case FormatBGR888:
		return 2, 1, 0, -1, true
	default:
		return 0, 0, 0, 0, false
	}
}

// yuvLayout describes where the chroma samples of a surface live.
type yuvLayout struct {
	uOff, vOff   int  // plane byte offsets, equal when interleaved
	chromaStride int  // byte stride of one chroma row
	subY         int  // vertical subsampling factor
	interleaved  bool // semi-planar CbCr/CrCb pairs
	crFirst      bool // Cr stored before Cb
}

func surfaceYUVLayout(format SurfaceFormat, hs, vs int) (yuvLayout, bool) {
	lumaSize := hs * vs
	switch format {
	case FormatYCbCr420P, FormatYCrCb420P:
		half := hs / 2
		l := yuvLayout{
			uOff:         lumaSize,
			vOff:         lumaSize + half*(vs/2),
			chromaStride: half,
			subY:         2,
			interleaved:  false,
			crFirst:      format == FormatYCrCb420P,
		}
		return l, true
	case FormatYCbCr422P, FormatYCrCb422P:
		half := hs / 2
		l := yuvLayout{
			uOff:         lumaSize,
			vOff:         lumaSize + half*vs,
			chromaStride: half,
			subY:         1,
			interleaved:  false,
			crFirst:      format == FormatYCrCb422P,
		}
		return l, true
	case FormatYCbCr420SP, FormatYCrCb420SP:
		l := yuvLayout{
			uOff:         lumaSize,
			vOff:         lumaSize,
			chromaStride: hs,
			subY:         2,
			interleaved:  true,
			crFirst:      format == FormatYCrCb420SP,
		}
		return l, true
	case FormatYCbCr422SP, FormatYCrCb422SP:
		l := yuvLayout{
			uOff:         lumaSize,
			vOff:         lumaSize,
			chromaStride: hs,
			subY:         1,
			interleaved:  true,
			crFirst:      format == FormatYCrCb422SP,
		}
		return l, true
	default:
		return yuvLayout{}, false
	}
}

// surfaceSpan returns the byte span the decode and encode loops address
// for the surface geometry. HStride may be a raw byte stride the
// descriptor builder could not normalize, so the span can exceed the
// backing data and must be checked before any loop runs. The second
// return value is false for formats the software path does not handle.
func surfaceSpan(d *Descriptor) (int, bool) {
	w := int(d.Rect.Width)
	h := int(d.Rect.Height)
	hs := int(d.Rect.HStride)
	if w == 0 || h == 0 {
		return 0, true
	}

	if _, _, _, _, ok := packedOrder(d.Format); ok {
		return ((h-1)*hs + w) * int(d.Format.PixelStride()), true
	}

	switch d.Format {
	case FormatRGB565, FormatRGBA5551:
		return ((h-1)*hs + w) * 2, true
	}

	layout, ok := surfaceYUVLayout(d.Format, hs, int(d.Rect.VStride))
	if !ok {
		return 0, false
	}
	luma := (h-1)*hs + w
	cy := (h - 1) / layout.subY
	cx := (w - 1) / 2
	chroma := layout.vOff + cy*layout.chromaStride + cx + 1
	if layout.interleaved {
		chroma = layout.uOff + cy*layout.chromaStride + cx*2 + 2
	}
	return max(luma, chroma), true
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// decodeSurface reads a surface into an RGBA image using a BT.601
// approximation for the YUV families.
func decodeSurface(d *Descriptor) (*image.RGBA, error) {
	w := int(d.Rect.Width)
	h := int(d.Rect.Height)
	hs := int(d.Rect.HStride)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	data := d.Data

	if ri, gi, bi, ai, ok := packedOrder(d.Format); ok {
		bpp := int(d.Format.PixelStride())
		for yy := 0; yy < h; yy++ {
			for xx := 0; xx < w; xx++ {
				px := data[yy*hs*bpp+xx*bpp:]
				off := img.PixOffset(xx, yy)
				img.Pix[off+0] = px[ri]
				img.Pix[off+1] = px[gi]
				img.Pix[off+2] = px[bi]
				if ai >= 0 {
					img.Pix[off+3] = px[ai]
				} else {
					img.Pix[off+3] = 255
				}
			}
		}
		return img, nil
	}

	switch d.Format {
	case FormatRGB565, FormatRGBA5551:
		for yy := 0; yy < h; yy++ {
			for xx := 0; xx < w; xx++ {
				v := uint16(data[yy*hs*2+xx*2]) | uint16(data[yy*hs*2+xx*2+1])<<8
				off := img.PixOffset(xx, yy)
				if d.Format == FormatRGB565 {
					img.Pix[off+0] = byte(v>>11) << 3
					img.Pix[off+1] = byte(v>>5&0x3f) << 2
					img.Pix[off+2] = byte(v&0x1f) << 3
				} else {
					img.Pix[off+0] = byte(v>>11) << 3
					img.Pix[off+1] = byte(v>>6&0x1f) << 3
					img.Pix[off+2] = byte(v>>1&0x1f) << 3
				}
				img.Pix[off+3] = 255
			}
		}
		return img, nil
	}

	layout, ok := surfaceYUVLayout(d.Format, hs, int(d.Rect.VStride))
	if !ok {
		return nil, fmt.Errorf("surface format 0x%x needs the hardware engine", int32(d.Format))
	}

	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			lum := int(data[yy*hs+xx])
			cy := yy / layout.subY
			cx := xx / 2
			var cb, cr int
			if layout.interleaved {
				base := layout.uOff + cy*layout.chromaStride + cx*2
				cb, cr = int(data[base]), int(data[base+1])
			} else {
				cb = int(data[layout.uOff+cy*layout.chromaStride+cx])
				cr = int(data[layout.vOff+cy*layout.chromaStride+cx])
			}
			if layout.crFirst {
				cb, cr = cr, cb
			}

			c := lum - 16
			dd := cb - 128
			e := cr - 128
			off := img.PixOffset(xx, yy)
			img.Pix[off+0] = clampByte((298*c + 409*e + 128) >> 8)
			img.Pix[off+1] = clampByte((298*c - 100*dd - 208*e + 128) >> 8)
			img.Pix[off+2] = clampByte((298*c + 516*dd + 128) >> 8)
			img.Pix[off+3] = 255
		}
	}
	return img, nil
}

// encodeSurface writes an RGBA image into a surface, subsampling chroma
// at the top-left site of each block.
func encodeSurface(d *Descriptor, img *image.RGBA) error {
	w := int(d.Rect.Width)
	h := int(d.Rect.Height)
	hs := int(d.Rect.HStride)
	data := d.Data

	if ri, gi, bi, ai, ok := packedOrder(d.Format); ok {
		bpp := int(d.Format.PixelStride())
		for yy := 0; yy < h; yy++ {
			for xx := 0; xx < w; xx++ {
				off := img.PixOffset(xx, yy)
				px := data[yy*hs*bpp+xx*bpp:]
				px[ri] = img.Pix[off+0]
				px[gi] = img.Pix[off+1]
				px[bi] = img.Pix[off+2]
				if ai >= 0 {
					px[ai] = img.Pix[off+3]
				}
			}
		}
		return nil
	}

	switch d.Format {
	case FormatRGB565, FormatRGBA5551:
		for yy := 0; yy < h; yy++ {
			for xx := 0; xx < w; xx++ {
				off := img.PixOffset(xx, yy)
				r := uint16(img.Pix[off+0])
				g := uint16(img.Pix[off+1])
				b := uint16(img.Pix[off+2])
				var v uint16
				if d.Format == FormatRGB565 {
					v = r>>3<<11 | g>>2<<5 | b>>3
				} else {
					v = r>>3<<11 | g>>3<<6 | b>>3<<1 | 1
				}
				data[yy*hs*2+xx*2] = byte(v)
				data[yy*hs*2+xx*2+1] = byte(v >> 8)
			}
		}
		return nil
	}

	layout, ok := surfaceYUVLayout(d.Format, hs, int(d.Rect.VStride))
	if !ok {
		return fmt.Errorf("surface format 0x%x needs the hardware engine", int32(d.Format))
	}

	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			off := img.PixOffset(xx, yy)
			r := int(img.Pix[off+0])
			g := int(img.Pix[off+1])
			b := int(img.Pix[off+2])
			data[yy*hs+xx] = clampByte(((66*r + 129*g + 25*b + 128) >> 8) + 16)

			if xx%2 != 0 || yy%layout.subY != 0 {
				continue
			}
			cb := clampByte(((-38*r - 74*g + 112*b + 128) >> 8) + 128)
			cr := clampByte(((112*r - 94*g - 18*b + 128) >> 8) + 128)
			if layout.crFirst {
				cb, cr = cr, cb
			}
			cy := yy / layout.subY
			cx := xx / 2
			if layout.interleaved {
				base := layout.uOff + cy*layout.chromaStride + cx*2
				data[base] = cb
				data[base+1] = cr
			} else {
				data[layout.uOff+cy*layout.chromaStride+cx] = cb
				data[layout.vOff+cy*layout.chromaStride+cx] = cr
			}
		}
	}
	return nil
}
