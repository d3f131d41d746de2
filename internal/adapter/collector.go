package adapter

// Collector accumulates adapters up to an optional limit. Enumerators stop
// when Add reports ErrCollectionFull and hand back what was collected.
type Collector struct {
	// Limit caps the number of adapters; zero means unlimited.
	Limit int

	items Adapters
}

// NewCollector returns a Collector capped at limit adapters.
func NewCollector(limit int) *Collector {
	if limit < 0 {
		limit = 0
	}
	return &Collector{Limit: limit}
}

// Add appends a descriptor. Nothing is appended when an error is returned.
func (c *Collector) Add(name, description string) error {
	ad := New(name, description)
	if ad.Name == "" {
		return ErrEmptyName
	}
	if c.Limit > 0 && len(c.items) >= c.Limit {
		return ErrCollectionFull
	}
	c.items = append(c.items, ad)
	return nil
}

// Len reports how many adapters have been collected.
func (c *Collector) Len() int { return len(c.items) }

// Adapters returns the collected sequence and detaches it from the
// Collector, so later Adds never write into a slice the caller owns.
func (c *Collector) Adapters() Adapters {
	out := c.items
	if out == nil {
		out = Adapters{}
	}
	c.items = nil
	return out
}
