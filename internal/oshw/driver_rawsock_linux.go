//go:build linux

package oshw

import (
	"errors"
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"github.com/yalefresne/ecoshw/internal/byteorder"
)

// etherTypeECAT is the EtherType of EtherCAT frames.
const etherTypeECAT = 0x88a4

var interfaceByName = net.InterfaceByName

// RawSocketDriver probes adapters by binding an AF_PACKET socket to the
// named interface and closing it again. It needs CAP_NET_RAW.
type RawSocketDriver struct{}

// NewRawSocketDriver returns a RawSocketDriver.
func NewRawSocketDriver() (*RawSocketDriver, error) {
	return &RawSocketDriver{}, nil
}

// Open probes name. Speed and duplex are left to the kernel driver.
func (d *RawSocketDriver) Open(name string, mode OpenMode, _ InterruptMode) (Handle, error) {
	if mode&ProbeOnly == 0 {
		return nil, ErrNotProbe
	}

	ifi, err := interfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAdapterAbsent, name, err)
	}

	proto := int(byteorder.Htons(etherTypeECAT))
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW|unix.SOCK_CLOEXEC, proto)
	if err != nil {
		return nil, classifyErrno(name, "socket", err)
	}

	sa := &unix.SockaddrLinklayer{Protocol: uint16(proto), Ifindex: ifi.Index}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, classifyErrno(name, "bind", err)
	}
	return rawHandle(fd), nil
}

type rawHandle int

func (h rawHandle) Close() error {
	return unix.Close(int(h))
}

func classifyErrno(name, op string, err error) error {
	switch {
	case errors.Is(err, unix.ENODEV), errors.Is(err, unix.ENXIO):
		return fmt.Errorf("%w: %s: %s: %w", ErrAdapterAbsent, name, op, err)
	case errors.Is(err, unix.EBUSY):
		return fmt.Errorf("%w: %s: %s: %w", ErrAdapterBusy, name, op, err)
	default:
		return fmt.Errorf("%s %s: %w", op, name, err)
	}
}
