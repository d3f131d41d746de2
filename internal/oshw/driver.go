package oshw

import (
	"errors"
	"strings"
)

// OpenMode selects link settings and access mode for Driver.Open.
type OpenMode uint32

const (
	// Speed10 requests a 10 Mbit/s link.
	Speed10 OpenMode = 1 << iota
	// Speed100 requests a 100 Mbit/s link.
	Speed100
	// Speed1000 requests a 1 Gbit/s link.
	Speed1000
	// DuplexHalf requests half duplex.
	DuplexHalf
	// DuplexFull requests full duplex.
	DuplexFull
	// ProbeOnly tests that the device exists without keeping it.
	ProbeOnly
)

// probeMode is what discovery asks of every candidate.
const probeMode = Speed1000 | DuplexFull | ProbeOnly

func (m OpenMode) String() string {
	names := []struct {
		bit  OpenMode
		name string
	}{
		{Speed10, "10M"},
		{Speed100, "100M"},
		{Speed1000, "1000M"},
		{DuplexHalf, "half"},
		{DuplexFull, "full"},
		{ProbeOnly, "probe"},
	}
	var parts []string
	for _, n := range names {
		if m&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// InterruptMode selects whether the driver delivers receive interrupts.
type InterruptMode uint8

const (
	// NoInterrupt leaves the device polled; discovery always uses it.
	NoInterrupt InterruptMode = iota
	// Interrupt asks the driver to signal received frames.
	Interrupt
)

var (
	// ErrAdapterAbsent means no device answers to the name.
	ErrAdapterAbsent = errors.New("adapter absent")
	// ErrAdapterBusy means the device exists but could not be opened now.
	ErrAdapterBusy = errors.New("adapter busy")
	// ErrDriverUnavailable means the driver cannot run on this platform.
	ErrDriverUnavailable = errors.New("driver unavailable")
	// ErrNotProbe is returned by drivers that only support ProbeOnly opens.
	ErrNotProbe = errors.New("only probe-only opens are supported")
)

// Driver is the hardware driver boundary used by NativeEnumerator.
type Driver interface {
	Open(name string, mode OpenMode, irq InterruptMode) (Handle, error)
}

// Handle is an opened device.
type Handle interface {
	Close() error
}

// probeReason classifies a failed probe for logging.
func probeReason(err error) string {
	switch {
	case errors.Is(err, ErrAdapterAbsent):
		return "absent"
	case errors.Is(err, ErrAdapterBusy):
		return "busy"
	case errors.Is(err, ErrDriverUnavailable):
		return "driver unavailable"
	default:
		return "error"
	}
}
