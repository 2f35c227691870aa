package ifs

import (
	"math/rand/v2"
	"time"

	"github.com/matzehuels/ifscope/pkg/errors"
)

// DefaultPoints is the point count a new State starts with.
const DefaultPoints = 50000

// State is the presentation layer's view of the engine: the selected system
// and the requested point count. Selection and count changes take effect on
// the next [State.Regenerate]. Output already returned is never modified,
// except under [WithBufferReuse], where each Regenerate overwrites the slice
// handed out by the previous call.
//
// State is not safe for concurrent use.
type State struct {
	catalog *Catalog
	system  *System
	count   int
	rng     Source
	buf     []Point
	reuse   bool
}

// StateOption configures a State.
type StateOption func(*State) error

// WithSelection selects the named system instead of the first catalog entry.
func WithSelection(name string) StateOption {
	return func(s *State) error { return s.Select(name) }
}

// WithCount sets the initial point count.
func WithCount(n int) StateOption {
	return func(s *State) error { return s.SetCount(n) }
}

// WithSource injects the random source consumed by regeneration.
func WithSource(src Source) StateOption {
	return func(s *State) error {
		s.rng = src
		return nil
	}
}

// WithBufferReuse makes Regenerate write into the same backing array on every
// call. Callers must be done with the previous frame's slice before asking
// for the next one.
func WithBufferReuse() StateOption {
	return func(s *State) error {
		s.reuse = true
		return nil
	}
}

// NewState creates a State over catalog, selecting its first system with
// [DefaultPoints] points and a time-seeded source unless options say
// otherwise. The catalog must not be empty.
func NewState(catalog *Catalog, opts ...StateOption) (*State, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "catalog is empty")
	}
	seed := uint64(time.Now().UnixNano())
	s := &State{
		catalog: catalog,
		system:  catalog.At(0),
		count:   DefaultPoints,
		rng:     rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Catalog returns the catalog the state selects from.
func (s *State) Catalog() *Catalog { return s.catalog }

// Selected returns the currently selected system.
func (s *State) Selected() *System { return s.system }

// Count returns the requested point count.
func (s *State) Count() int { return s.count }

// Select switches the active system. Unknown names return an UNKNOWN_SYSTEM
// error and leave the selection unchanged.
func (s *State) Select(name string) error {
	sys, err := s.catalog.Lookup(name)
	if err != nil {
		return err
	}
	s.system = sys
	return nil
}

// SetCount sets the requested point count. Negative counts return an
// INVALID_COUNT error and leave the count unchanged; upper bounds are the
// caller's responsibility.
func (s *State) SetCount(n int) error {
	if err := errors.ValidateCount(n, 0); err != nil {
		return err
	}
	s.count = n
	return nil
}

// Regenerate runs a fresh chaos game for the current selection and count.
func (s *State) Regenerate() []Point {
	if s.reuse {
		s.buf = GenerateInto(s.buf, s.system, s.count, s.rng)
		return s.buf
	}
	return Generate(s.system, s.count, s.rng)
}
