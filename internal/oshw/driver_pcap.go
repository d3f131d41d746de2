package oshw

import (
	"fmt"
	"strings"
	"time"

	"github.com/gopacket/gopacket/pcap"
)

// probeSnapLen is small on purpose: a probe handle never reads a frame.
const probeSnapLen = 64

// PcapDriver probes adapters by activating and closing a libpcap handle.
// libpcap cannot negotiate speed or duplex, so those bits are ignored, and
// interrupt delivery has no meaning for it.
type PcapDriver struct {
	Timeout time.Duration
}

// NewPcapDriver returns a PcapDriver with a short read timeout.
func NewPcapDriver() *PcapDriver {
	return &PcapDriver{Timeout: 100 * time.Millisecond}
}

// pcapOpen activates a handle on name; tests replace it.
var pcapOpen = func(name string, timeout time.Duration) (Handle, error) {
	inactive, err := pcap.NewInactiveHandle(name)
	if err != nil {
		return nil, err
	}
	defer inactive.CleanUp()

	if err := inactive.SetSnapLen(probeSnapLen); err != nil {
		return nil, err
	}
	if err := inactive.SetPromisc(false); err != nil {
		return nil, err
	}
	if err := inactive.SetTimeout(timeout); err != nil {
		return nil, err
	}

	h, err := inactive.Activate()
	if err != nil {
		return nil, err
	}
	return pcapHandle{h}, nil
}

type pcapHandle struct{ h *pcap.Handle }

func (p pcapHandle) Close() error {
	p.h.Close()
	return nil
}

// Open probes name. Only ProbeOnly opens are supported; real I/O handles
// are opened elsewhere.
func (d *PcapDriver) Open(name string, mode OpenMode, _ InterruptMode) (Handle, error) {
	if mode&ProbeOnly == 0 {
		return nil, ErrNotProbe
	}
	h, err := pcapOpen(name, d.Timeout)
	if err != nil {
		return nil, classifyPcapError(name, err)
	}
	return h, nil
}

// classifyPcapError maps libpcap activation failures onto the probe error
// kinds. gopacket does not export its activation error values, so the
// message text is all there is to go on.
func classifyPcapError(name string, err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such device"):
		return fmt.Errorf("%w: %s: %w", ErrAdapterAbsent, name, err)
	case strings.Contains(msg, "busy"), strings.Contains(msg, "already activated"):
		return fmt.Errorf("%w: %s: %w", ErrAdapterBusy, name, err)
	default:
		return fmt.Errorf("pcap open %s: %w", name, err)
	}
}
