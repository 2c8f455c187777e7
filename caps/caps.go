// Package caps models the constraint sets exchanged with neighboring
// pipeline stages during format negotiation.
package caps

import (
	"fmt"
	"math"
	"strings"

	"github.com/ugparu/gorga"
)

// Feature tags describing how a descriptor's memory is provided.
const (
	FeatureAny          = "ANY"                 // wildcard: any memory kind
	FeatureSystemMemory = "memory:SystemMemory" // plain host memory
	FeatureDMABuf       = "memory:DMABuf"       // device-exportable memory
)

// IntRange is an inclusive integer constraint range.
type IntRange struct {
	Min, Max int
}

// Contains reports whether the range fully covers another range.
func (r IntRange) Contains(other IntRange) bool {
	return r.Min <= other.Min && r.Max >= other.Max
}

// Intersect returns the overlap of two ranges, if any.
func (r IntRange) Intersect(other IntRange) (IntRange, bool) {
	out := IntRange{Min: max(r.Min, other.Min), Max: min(r.Max, other.Max)}
	return out, out.Min <= out.Max
}

// Fraction is a rational number, used for framerates.
type Fraction struct {
	Num, Den int
}

// Cmp compares two fractions, returning -1, 0 or 1.
func (f Fraction) Cmp(other Fraction) int {
	lhs := int64(f.Num) * int64(other.Den)
	rhs := int64(other.Num) * int64(f.Den)
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// FractionRange is an inclusive constraint range over fractions.
type FractionRange struct {
	Min, Max Fraction
}

// Contains reports whether the range fully covers another range.
func (r FractionRange) Contains(other FractionRange) bool {
	return r.Min.Cmp(other.Min) <= 0 && r.Max.Cmp(other.Max) >= 0
}

// Intersect returns the overlap of two fraction ranges, if any.
func (r FractionRange) Intersect(other FractionRange) (FractionRange, bool) {
	out := r
	if other.Min.Cmp(out.Min) > 0 {
		out.Min = other.Min
	}
	if other.Max.Cmp(out.Max) < 0 {
		out.Max = other.Max
	}
	return out, out.Min.Cmp(out.Max) <= 0
}

// FullFramerateRange returns the unconstrained framerate range [0, max].
func FullFramerateRange() FractionRange {
	return FractionRange{
		Min: Fraction{Num: 0, Den: 1},
		Max: Fraction{Num: math.MaxInt32, Den: 1},
	}
}

// Descriptor is one structured constraint set describing acceptable
// stream parameters on one side of the stage. Empty Formats, Colorimetry
// and ChromaSite fields are unconstrained.
type Descriptor struct {
	Formats     []gorga.PixelFormat // Acceptable pixel formats, nil for any.
	Width       IntRange            // Acceptable width range in pixels.
	Height      IntRange            // Acceptable height range in pixels.
	Framerate   FractionRange       // Acceptable framerate range.
	Colorimetry string              // Colorimetry constraint, empty for any.
	ChromaSite  string              // Chroma siting constraint, empty for any.
	Features    string              // Memory feature tag, FeatureAny for the wildcard.
}

// Clone returns a deep copy of the descriptor.
func (d Descriptor) Clone() Descriptor {
	out := d
	if d.Formats != nil {
		out.Formats = make([]gorga.PixelFormat, len(d.Formats))
		copy(out.Formats, d.Formats)
	}
	return out
}

// hasFormat reports whether the descriptor accepts the given format.
// An empty format list accepts everything.
func (d Descriptor) hasFormat(format gorga.PixelFormat) bool {
	if len(d.Formats) == 0 {
		return true
	}
	for _, f := range d.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Subset reports whether every stream satisfying d also satisfies other.
func (d Descriptor) Subset(other Descriptor) bool {
	if other.Features != d.Features && other.Features != FeatureAny {
		return false
	}
	if len(other.Formats) > 0 {
		if len(d.Formats) == 0 {
			return false
		}
		for _, f := range d.Formats {
			if !other.hasFormat(f) {
				return false
			}
		}
	}
	if !other.Width.Contains(d.Width) || !other.Height.Contains(d.Height) {
		return false
	}
	if !other.Framerate.Contains(d.Framerate) {
		return false
	}
	if other.Colorimetry != "" && other.Colorimetry != d.Colorimetry {
		return false
	}
	if other.ChromaSite != "" && other.ChromaSite != d.ChromaSite {
		return false
	}
	return true
}

// Intersect combines two descriptors into the constraint set satisfied by
// both, preferring d's field ordering. The second return value is false
// when the descriptors do not overlap.
func (d Descriptor) Intersect(other Descriptor) (Descriptor, bool) {
	out := d.Clone()

	switch {
	case d.Features == other.Features:
	case d.Features == FeatureAny:
		out.Features = other.Features
	case other.Features == FeatureAny:
	default:
		return Descriptor{}, false
	}

	if len(d.Formats) == 0 {
		out.Formats = append([]gorga.PixelFormat(nil), other.Formats...)
	} else if len(other.Formats) > 0 {
		out.Formats = out.Formats[:0]
		for _, f := range d.Formats {
			if other.hasFormat(f) {
				out.Formats = append(out.Formats, f)
			}
		}
		if len(out.Formats) == 0 {
			return Descriptor{}, false
		}
	}

	var ok bool
	if out.Width, ok = d.Width.Intersect(other.Width); !ok {
		return Descriptor{}, false
	}
	if out.Height, ok = d.Height.Intersect(other.Height); !ok {
		return Descriptor{}, false
	}
	if out.Framerate, ok = d.Framerate.Intersect(other.Framerate); !ok {
		return Descriptor{}, false
	}

	if d.Colorimetry == "" {
		out.Colorimetry = other.Colorimetry
	} else if other.Colorimetry != "" && other.Colorimetry != d.Colorimetry {
		return Descriptor{}, false
	}
	if d.ChromaSite == "" {
		out.ChromaSite = other.ChromaSite
	} else if other.ChromaSite != "" && other.ChromaSite != d.ChromaSite {
		return Descriptor{}, false
	}

	return out, true
}

// String returns a compact human-readable form of the descriptor.
func (d Descriptor) String() string {
	formats := make([]string, 0, len(d.Formats))
	for _, f := range d.Formats {
		formats = append(formats, f.String())
	}
	return fmt.Sprintf("video/x-raw(%s) format={%s} width=[%d,%d] height=[%d,%d]",
		d.Features, strings.Join(formats, ","),
		d.Width.Min, d.Width.Max, d.Height.Min, d.Height.Max)
}

// Caps is an ordered set of capability descriptors.
type Caps []Descriptor

// Empty reports whether the set holds no descriptors.
func (c Caps) Empty() bool {
	return len(c) == 0
}

// hasSuperset reports whether d is already expressed by the set.
func (c Caps) hasSuperset(d Descriptor) bool {
	for _, o := range c {
		if d.Subset(o) {
			return true
		}
	}
	return false
}

// Intersect returns the pairwise intersection of two capability sets,
// preferring c's descriptor and field ordering.
func (c Caps) Intersect(other Caps) Caps {
	out := make(Caps, 0, len(c))
	for _, a := range c {
		for _, b := range other {
			merged, ok := a.Intersect(b)
			if !ok || out.hasSuperset(merged) {
				continue
			}
			out = append(out, merged)
		}
	}
	return out
}

// template returns the declared constraint set with the given dimension bound.
func template(bound int, features string) Caps {
	return Caps{{
		Formats:   gorga.SupportedFormats(),
		Width:     IntRange{Min: 1, Max: bound},
		Height:    IntRange{Min: 1, Max: bound},
		Framerate: FullFramerateRange(),
		Features:  features,
	}}
}

// SourceTemplate returns the constraint set advertised toward the source
// side: the accelerator emits at most 4096 pixels in either dimension.
func SourceTemplate() Caps {
	return template(maxSourceDim, FeatureSystemMemory)
}

// SinkTemplate returns the constraint set advertised toward the sink
// side: the accelerator accepts at most 8192 pixels in either dimension.
func SinkTemplate() Caps {
	return template(maxSinkDim, FeatureSystemMemory)
}
