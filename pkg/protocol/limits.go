package protocol

// Size limits applied when decoding client frames.
const (
	// MaxFrameSize is the largest text frame accepted from a client.
	MaxFrameSize = 64 * 1024

	// MaxValueLength is the largest field value, in bytes, an input event
	// may carry.
	MaxValueLength = 16 * 1024

	// MaxFieldNameLength bounds the field name of an event.
	MaxFieldNameLength = 64
)

// Limits allows configuring custom limits for decoding.
// Use DefaultLimits() for sensible defaults.
type Limits struct {
	FrameSize  int
	ValueBytes int
}

// DefaultLimits returns the default decoding limits.
func DefaultLimits() Limits {
	return Limits{
		FrameSize:  MaxFrameSize,
		ValueBytes: MaxValueLength,
	}
}
