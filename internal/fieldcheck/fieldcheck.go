// Package fieldcheck detects duplicate field-number and duplicate
// field-name registrations while a generator-emitted FieldDefinition table
// is being built.
//
// It is adapted from internal/collision.Tracker, which detects two metric
// names hashing to the same 64-bit ID while an encoder accumulates
// metrics, keeping a hash-to-name map purely for a fast bucket lookup
// before falling back to an exact string comparison. Here the same
// hash-bucket-then-compare shape checks for a different schema-build-time
// mistake: two fields sharing a Name even though they have distinct field
// numbers. Field-number collisions don't need hashing — numbers are
// already small integers looked up directly — but name collisions, like
// metric names, benefit from it.
package fieldcheck

import (
	"fmt"

	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/internal/hash"
	"github.com/arloliu/pbwire/schema"
)

// Registry tracks which *schema.FieldDefinition currently owns each field
// number and each field name during schema construction.
type Registry struct {
	byNumber   map[int]*schema.FieldDefinition
	byNameHash map[uint64][]*schema.FieldDefinition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byNumber:   make(map[int]*schema.FieldDefinition),
		byNameHash: make(map[uint64][]*schema.FieldDefinition),
	}
}

// Register claims def's field number and name. It is a no-op if def is
// already registered (the generator may call this more than once for the
// same field), and returns an error if a different *schema.FieldDefinition
// already claims the number, or if a different field number already
// claims the name.
func (r *Registry) Register(def *schema.FieldDefinition) error {
	if existing, ok := r.byNumber[def.Number]; ok {
		if existing == def {
			return nil
		}

		return fmt.Errorf("%w: field number %d claimed by both %q and %q",
			errs.ErrInvalidArgument, def.Number, existing.Name, def.Name)
	}

	id := hash.ID(def.Name)
	for _, other := range r.byNameHash[id] {
		if other.Name == def.Name {
			return fmt.Errorf("%w: field name %q already registered (numbers %d and %d)",
				errs.ErrInvalidArgument, def.Name, other.Number, def.Number)
		}
		// Different names sharing a hash bucket: a genuine xxhash collision,
		// not a schema error. Both entries stay in the bucket so a later
		// exact-name match still resolves correctly.
	}

	r.byNameHash[id] = append(r.byNameHash[id], def)
	r.byNumber[def.Number] = def

	return nil
}

// Count returns the number of distinct field numbers registered so far.
func (r *Registry) Count() int {
	return len(r.byNumber)
}

// Reset clears all registrations, preserving the maps' capacity the same
// way Tracker.Reset avoids reallocating between encodes.
func (r *Registry) Reset() {
	for k := range r.byNumber {
		delete(r.byNumber, k)
	}
	for k := range r.byNameHash {
		delete(r.byNameHash, k)
	}
}
