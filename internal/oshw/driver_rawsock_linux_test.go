//go:build linux

package oshw

import (
	"errors"
	"net"
	"testing"

	"golang.org/x/sys/unix"
)

func TestRawSocketDriver_rejectsNonProbe(t *testing.T) {
	d, err := NewRawSocketDriver()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := d.Open("eth0", Speed1000|DuplexFull, NoInterrupt); !errors.Is(err, ErrNotProbe) {
		t.Errorf("want ErrNotProbe, got %v", err)
	}
}

func TestRawSocketDriver_absentInterface(t *testing.T) {
	original := interfaceByName
	defer func() { interfaceByName = original }()
	interfaceByName = func(string) (*net.Interface, error) {
		return nil, errors.New("route ip+net: no such network interface")
	}

	d, _ := NewRawSocketDriver()
	if _, err := d.Open("ie1g0", probeMode, NoInterrupt); !errors.Is(err, ErrAdapterAbsent) {
		t.Errorf("want ErrAdapterAbsent, got %v", err)
	}
}

func TestClassifyErrno(t *testing.T) {
	if err := classifyErrno("eth0", "bind", unix.ENODEV); !errors.Is(err, ErrAdapterAbsent) {
		t.Errorf("ENODEV: got %v", err)
	}
	if err := classifyErrno("eth0", "bind", unix.EBUSY); !errors.Is(err, ErrAdapterBusy) {
		t.Errorf("EBUSY: got %v", err)
	}
	err := classifyErrno("eth0", "socket", unix.EPERM)
	if !errors.Is(err, unix.EPERM) || errors.Is(err, ErrAdapterAbsent) {
		t.Errorf("EPERM: got %v", err)
	}
}
