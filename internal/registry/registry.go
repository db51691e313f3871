// Package registry implements the thread-safe store of wanted service names
// and time-stamped response sets shared between the Sender, Receiver, and
// the consumer-facing Facade.
package registry

import (
	"sync"
	"time"

	"github.com/nyxsd/dnssd/internal/wire"
)

// ResponseSet is one packet's worth of decoded records, with arrival time.
// Immutable after creation: the Registry never mutates a ResponseSet once
// appended.
type ResponseSet struct {
	Timestamp time.Time
	Records   []wire.Record
}

// Registry holds the set of service names currently of interest and, for
// each name ever queried, the ordered history of response sets received for
// it. A name present in the response history may or may not still be
// wanted; lookups against withdrawn names must still succeed.
//
// All six operations acquire mu for their full duration. No I/O occurs
// under the lock.
type Registry struct {
	mu     sync.Mutex
	wanted []string
	found  map[string][]ResponseSet
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		found: make(map[string][]ResponseSet),
	}
}

// AddWanted appends name to the wanted list. Duplicates are allowed; the
// caller is not required to deduplicate.
func (r *Registry) AddWanted(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wanted = append(r.wanted, name)
}

// RemoveWanted removes the first occurrence of name from the wanted list,
// if present. It is not an error for name to be absent.
func (r *Registry) RemoveWanted(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.wanted {
		if n == name {
			r.wanted = append(r.wanted[:i], r.wanted[i+1:]...)
			return
		}
	}
}

// IsWanted reports whether name is currently present in the wanted list.
func (r *Registry) IsWanted(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.wanted {
		if n == name {
			return true
		}
	}
	return false
}

// WantedSnapshot returns a copy of the current wanted list, safe for the
// caller to range over without holding the Registry lock.
func (r *Registry) WantedSnapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.wanted))
	copy(out, r.wanted)
	return out
}

// AppendResponse appends a new ResponseSet under name, timestamped at the
// moment of the call. found grows unboundedly; no expiry policy is applied.
func (r *Registry) AppendResponse(name string, records []wire.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.found[name] = append(r.found[name], ResponseSet{
		Timestamp: time.Now(),
		Records:   records,
	})
}

// Latest returns the most recently appended ResponseSet under name, and
// true if one exists. The second return value is false if name has never
// received a response.
func (r *Registry) Latest(name string) (ResponseSet, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sets, ok := r.found[name]
	if !ok || len(sets) == 0 {
		return ResponseSet{}, false
	}
	return sets[len(sets)-1], true
}
