//go:build !linux

package oshw

import "fmt"

// RawSocketDriver is a stub for platforms without AF_PACKET.
type RawSocketDriver struct{}

// NewRawSocketDriver returns an error on non-Linux systems.
func NewRawSocketDriver() (*RawSocketDriver, error) {
	return nil, fmt.Errorf("%w: raw socket probing is only available on Linux", ErrDriverUnavailable)
}

// Open always fails on non-Linux systems.
func (d *RawSocketDriver) Open(name string, _ OpenMode, _ InterruptMode) (Handle, error) {
	return nil, fmt.Errorf("%w: %s", ErrDriverUnavailable, name)
}
