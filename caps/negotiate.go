package caps

// Direction selects which neighbor a negotiated constraint set is meant
// for.
type Direction uint8

// Constants representing negotiation directions.
const (
	TowardSource = Direction(iota + 1) // constraint set for the downstream (output) side
	TowardSink                         // constraint set for the upstream (input) side
)

// Dimension bounds of the blit engine. The accelerator reads surfaces up
// to 8192 pixels per dimension but writes at most 4096.
const (
	maxSourceDim = 4096
	maxSinkDim   = 8192
)

// String returns the human-readable string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case TowardSource:
		return "source"
	case TowardSink:
		return "sink"
	}
	return "UNKNOWN"
}

// Negotiate derives the constraint set acceptable on the opposite side of
// the stage from one side's set. Width and height are pinned to the
// engine's transfer limits for the requested direction, and format,
// colorimetry and chroma siting become renegotiable on descriptors with a
// concrete memory feature. When filter is non-nil the result is
// intersected with it, preferring the filter's ordering. The result may
// be empty; Negotiate never fails.
func Negotiate(direction Direction, in, filter Caps) Caps {
	bound := maxSinkDim
	if direction == TowardSource {
		bound = maxSourceDim
	}

	out := make(Caps, 0, len(in))
	for i, desc := range in {
		// Skip descriptors already expressed by the accumulated set.
		if i > 0 && out.hasSuperset(desc) {
			continue
		}

		clone := desc.Clone()
		clone.Width = IntRange{Min: 1, Max: bound}
		clone.Height = IntRange{Min: 1, Max: bound}

		if clone.Features != FeatureAny {
			clone.Formats = nil
			clone.Colorimetry = ""
			clone.ChromaSite = ""
		}

		out = append(out, clone)
	}

	if filter != nil {
		out = filter.Intersect(out)
	}
	return out
}
