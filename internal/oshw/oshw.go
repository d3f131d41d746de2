// Package oshw discovers the network adapters an EtherCAT master can use.
//
// Two backends implement Enumerator: NativeEnumerator probes a fixed set of
// driver interface names with a probe-only open, and SystemEnumerator
// filters the operating system's interface list. The adapter names they
// return are what the I/O layer later opens.
package oshw

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/yalefresne/ecoshw/internal/adapter"
)

var (
	// ErrQueryFailed wraps the cause when the OS interface list is unreadable.
	ErrQueryFailed = errors.New("interface query failed")
	// ErrUnknownBackend is returned by New for an unrecognised backend.
	ErrUnknownBackend = errors.New("unknown backend")
)

// Enumerator lists the usable adapters in discovery order.
//
// An empty collection with a nil error means nothing usable was found.
// Absent adapters are never reported as errors, and a full collection
// truncates the result instead of failing it.
type Enumerator interface {
	Discover(ctx context.Context) (adapter.Adapters, error)
}

// FindAdapters runs e and always returns a collection, logging and
// discarding any error. Callers that must not tell "no adapters" from
// "query failed" use this.
func FindAdapters(ctx context.Context, e Enumerator, logger logrus.FieldLogger) adapter.Adapters {
	ads, err := e.Discover(ctx)
	if err != nil {
		loggerOrDiscard(logger).WithError(err).Error("adapter discovery failed")
	}
	if ads == nil {
		ads = adapter.Adapters{}
	}
	return ads
}

func loggerOrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}
