package oshw

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/yalefresne/ecoshw/internal/adapter"
)

// DefaultPrefixes are the driver interface families probed by default.
var DefaultPrefixes = []string{"ie1g", "rtl1g", "rtl1gl"}

// DefaultInstances is the number of instances probed per prefix.
const DefaultInstances = 4

// NativeEnumerator finds adapters by probing prefix+instance names against
// a Driver. Results are ordered prefix first, then instance ascending.
type NativeEnumerator struct {
	Driver    Driver
	Prefixes  []string
	Instances int
	// Limit caps the number of adapters returned; zero means unlimited.
	Limit  int
	Logger logrus.FieldLogger
}

// NewNativeEnumerator returns an enumerator using the default prefixes and
// instance count.
func NewNativeEnumerator(d Driver, logger logrus.FieldLogger) *NativeEnumerator {
	return &NativeEnumerator{
		Driver:    d,
		Prefixes:  append([]string(nil), DefaultPrefixes...),
		Instances: DefaultInstances,
		Logger:    logger,
	}
}

// Discover probes every candidate name. Failed probes are skipped.
func (n *NativeEnumerator) Discover(ctx context.Context) (adapter.Adapters, error) {
	log := loggerOrDiscard(n.Logger).WithField("backend", "native")
	c := adapter.NewCollector(n.Limit)

	for _, prefix := range n.Prefixes {
		for i := 0; i < n.Instances; i++ {
			if err := ctx.Err(); err != nil {
				return c.Adapters(), err
			}

			name := prefix + strconv.Itoa(i)
			if !n.probe(name, log) {
				continue
			}

			if err := c.Add(name, name); err != nil {
				if errors.Is(err, adapter.ErrCollectionFull) {
					log.WithField("limit", n.Limit).Warnf("adapter collection full at %s, returning %d adapters", name, c.Len())
					return c.Adapters(), nil
				}
				log.WithError(err).WithField("adapter", name).Warn("skipping adapter")
			}
		}
	}

	return c.Adapters(), nil
}

// probe opens name in probe-only mode and closes it straight away.
func (n *NativeEnumerator) probe(name string, log logrus.FieldLogger) bool {
	h, err := n.Driver.Open(name, probeMode, NoInterrupt)
	if err != nil {
		log.WithFields(logrus.Fields{
			"adapter": name,
			"reason":  probeReason(err),
		}).Debugf("probe failed: %v", err)
		return false
	}
	if err := h.Close(); err != nil {
		log.WithError(err).WithField("adapter", name).Warn("closing probe handle")
	}
	log.WithField("adapter", name).Debug("probe ok")
	return true
}
