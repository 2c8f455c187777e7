package utils

import "fmt"

// UnsupportedFormatError indicates that a logical pixel format has no
// hardware surface equivalent. Detected at setup, fatal for the format pair.
type UnsupportedFormatError struct {
	Format string
}

// Error returns the error message for UnsupportedFormatError.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %s", e.Format)
}

// InvalidMemoryError indicates that a frame has no usable backing memory
// for descriptor construction. Per-frame, recoverable.
type InvalidMemoryError struct {
}

// Error returns the error message for InvalidMemoryError.
func (*InvalidMemoryError) Error() string {
	return "no usable backing memory"
}

// HardwareFailureError indicates that the accelerator reported a failed
// blit. Per-frame, recoverable.
type HardwareFailureError struct {
	Code int
}

// Error returns the error message for HardwareFailureError.
func (e *HardwareFailureError) Error() string {
	return fmt.Sprintf("blit failed: code=%d", e.Code)
}

// ConfigurationRejectedError indicates that a negotiated or filtered
// capability set came out empty and the stream cannot be configured.
type ConfigurationRejectedError struct {
}

// Error returns the error message for ConfigurationRejectedError.
func (*ConfigurationRejectedError) Error() string {
	return "empty capability set"
}
