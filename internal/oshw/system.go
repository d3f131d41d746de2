package oshw

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yalefresne/ecoshw/internal/adapter"
	"github.com/yalefresne/ecoshw/internal/capture"
)

// DefaultReservedPrefixes names virtual adapters the master must not use.
var DefaultReservedPrefixes = []string{"ven"}

// Source returns the OS interface list, one record per interface address.
type Source func() ([]capture.Record, error)

// SystemEnumerator finds adapters by filtering the OS interface list.
type SystemEnumerator struct {
	Source           Source
	ReservedPrefixes []string
	// Limit caps the number of adapters returned; zero means unlimited.
	Limit  int
	Logger logrus.FieldLogger
}

// NewSystemEnumerator returns an enumerator over src that skips the default
// reserved prefixes.
func NewSystemEnumerator(src Source, logger logrus.FieldLogger) *SystemEnumerator {
	return &SystemEnumerator{
		Source:           src,
		ReservedPrefixes: append([]string(nil), DefaultReservedPrefixes...),
		Logger:           logger,
	}
}

// Discover keeps, in OS order, the link-layer records of interfaces that
// are up, addressed, not loopback and not reserved. Only link records are
// used so an interface with several address families is listed once.
func (s *SystemEnumerator) Discover(ctx context.Context) (adapter.Adapters, error) {
	log := loggerOrDiscard(s.Logger).WithField("backend", "system")

	recs, err := s.Source()
	if err != nil {
		return adapter.Adapters{}, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	c := adapter.NewCollector(s.Limit)
	for _, r := range recs {
		if err := ctx.Err(); err != nil {
			return c.Adapters(), err
		}
		if !s.usable(r) {
			continue
		}

		if r.Name == "" {
			log.WithFields(logrus.Fields{
				"description": "unknown",
				"family":      r.Family.String(),
			}).Debug("skipping interface without a name")
			continue
		}

		if err := c.Add(r.Name, r.Name); err != nil {
			if errors.Is(err, adapter.ErrCollectionFull) {
				log.WithField("limit", s.Limit).Warnf("adapter collection full at %s, returning %d adapters", r.Name, c.Len())
				return c.Adapters(), nil
			}
			log.WithError(err).WithField("adapter", r.Name).Debug("skipping interface")
		}
	}

	return c.Adapters(), nil
}

func (s *SystemEnumerator) usable(r capture.Record) bool {
	if r.Flags&capture.FlagUp == 0 || !r.HasAddr() {
		return false
	}
	if r.Flags&capture.FlagLoopback != 0 {
		return false
	}
	if r.Family != capture.FamilyLink {
		return false
	}
	for _, p := range s.ReservedPrefixes {
		if p != "" && strings.HasPrefix(r.Name, p) {
			return false
		}
	}
	return true
}
