package counters

import "sort"

// Counter represents a named counter on a card instance, such as the
// "sleep" or "charge" counters placed and consumed by effects.
type Counter struct {
	Name  string
	Count int
}

// NewCounter creates a new counter with the given name and count.
func NewCounter(name string, count int) *Counter {
	if count <= 0 {
		count = 1
	}
	return &Counter{
		Name:  name,
		Count: count,
	}
}

// Add adds the specified amount to the counter.
func (c *Counter) Add(amount int) {
	if amount > 0 {
		c.Count += amount
	}
}

// Remove removes the specified amount from the counter.
// Will not allow count to go below 0.
func (c *Counter) Remove(amount int) {
	if amount > 0 {
		if c.Count >= amount {
			c.Count -= amount
		} else {
			c.Count = 0
		}
	}
}

// Copy creates a deep copy of the counter.
func (c *Counter) Copy() *Counter {
	return &Counter{
		Name:  c.Name,
		Count: c.Count,
	}
}

// Counters manages the collection of counters on one card instance.
type Counters struct {
	Counters map[string]*Counter
}

// NewCounters creates a new Counters collection.
func NewCounters() *Counters {
	return &Counters{
		Counters: make(map[string]*Counter),
	}
}

// AddCounter adds amount counters of the given name, creating the entry
// if needed.
func (cs *Counters) AddCounter(name string, amount int) {
	if amount <= 0 {
		return
	}
	if existing, ok := cs.Counters[name]; ok {
		existing.Add(amount)
	} else {
		cs.Counters[name] = NewCounter(name, amount)
	}
}

// RemoveCounter removes the specified amount of counters of the given name.
// Depleted entries are deleted. Returns true if any counters were removed.
func (cs *Counters) RemoveCounter(name string, amount int) bool {
	if amount <= 0 {
		return false
	}
	if counter, ok := cs.Counters[name]; ok {
		counter.Remove(amount)
		if counter.Count == 0 {
			delete(cs.Counters, name)
		}
		return true
	}
	return false
}

// GetCount returns the count of counters with the given name.
func (cs *Counters) GetCount(name string) int {
	if counter, ok := cs.Counters[name]; ok {
		return counter.Count
	}
	return 0
}

// Names returns the counter names present, sorted for deterministic logs.
func (cs *Counters) Names() []string {
	names := make([]string, 0, len(cs.Counters))
	for name := range cs.Counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copy creates a deep copy of the collection.
func (cs *Counters) Copy() *Counters {
	out := NewCounters()
	for name, counter := range cs.Counters {
		out.Counters[name] = counter.Copy()
	}
	return out
}
