package oshw

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yalefresne/ecoshw/internal/capture"
	"github.com/yalefresne/ecoshw/internal/config"
)

// newRawSocketDriver is swapped in tests that run on every platform.
var newRawSocketDriver = func() (Driver, error) {
	d, err := NewRawSocketDriver()
	if err != nil {
		return nil, err
	}
	return d, nil
}

// New builds the Enumerator selected by cfg.
func New(cfg *config.Config, logger logrus.FieldLogger) (Enumerator, error) {
	switch cfg.Backend {
	case config.BackendNative:
		d, err := newDriver(cfg.Native.Driver)
		if err != nil {
			return nil, err
		}
		return &NativeEnumerator{
			Driver:    d,
			Prefixes:  append([]string(nil), cfg.Native.Prefixes...),
			Instances: cfg.Native.Instances,
			Limit:     cfg.MaxAdapters,
			Logger:    logger,
		}, nil

	case config.BackendSystem:
		src, err := newSource(cfg.System.Source)
		if err != nil {
			return nil, err
		}
		return &SystemEnumerator{
			Source:           src,
			ReservedPrefixes: append([]string(nil), cfg.System.ReservedPrefixes...),
			Limit:            cfg.MaxAdapters,
			Logger:           logger,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

func newDriver(name string) (Driver, error) {
	switch name {
	case config.DriverPcap:
		return NewPcapDriver(), nil
	case config.DriverRawSock:
		return newRawSocketDriver()
	}
	return nil, fmt.Errorf("%w: native driver %q", ErrUnknownBackend, name)
}

func newSource(name string) (Source, error) {
	switch name {
	case config.SourceNet:
		return capture.NetRecords, nil
	case config.SourcePcap:
		return capture.PcapRecords, nil
	}
	return nil, fmt.Errorf("%w: system source %q", ErrUnknownBackend, name)
}
