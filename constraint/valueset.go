// Package constraint implements the level-constraint system used to describe
// restrictions imposed by VC-2 levels: sets of permitted values, and tables
// enumerating permitted combinations of values.
package constraint

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

// Value is a single constrained value. In practice values are ints, bools or
// strings; any comparable type works.
type Value = any

// ValueRange is an inclusive range of integers.
type ValueRange struct {
	Low  int
	High int
}

// ValueSet represents a set of permitted values: discrete values, inclusive
// integer ranges, or the distinguished "any value" set which contains every
// possible value.
//
// The internal representation is kept maximally coalesced: no two stored
// ranges overlap or touch, and no stored discrete value falls inside a stored
// range. A ValueSet published as part of a Table must not be mutated
// afterwards.
type ValueSet struct {
	anything bool
	values   map[Value]struct{}
	ranges   []ValueRange
}

// NewValueSet creates a ValueSet holding the given discrete values and/or
// ValueRanges.
func NewValueSet(valuesAndRanges ...Value) *ValueSet {
	vs := &ValueSet{values: make(map[Value]struct{})}
	for _, v := range valuesAndRanges {
		if r, ok := v.(ValueRange); ok {
			vs.AddRange(r.Low, r.High)
		} else {
			vs.AddValue(v)
		}
	}
	return vs
}

// AnyValue creates the distinguished set containing every possible value.
func AnyValue() *ValueSet {
	return &ValueSet{anything: true}
}

// IsAnyValue reports whether this is the "any value" set.
func (vs *ValueSet) IsAnyValue() bool {
	return vs.anything
}

// IsEmpty reports whether the set contains no values at all.
func (vs *ValueSet) IsEmpty() bool {
	if vs.anything {
		return false
	}
	return len(vs.values) == 0 && len(vs.ranges) == 0
}

// Contains tests whether a value is a member of this set.
func (vs *ValueSet) Contains(value Value) bool {
	if vs.anything {
		return true
	}
	if _, ok := vs.values[value]; ok {
		return true
	}
	if i, ok := asInt(value); ok {
		for _, r := range vs.ranges {
			if r.Low <= i && i <= r.High {
				return true
			}
		}
	}
	return false
}

// AddValue adds a single discrete value to the set. Adding a value already
// present (directly or via a range) is a no-op. Adding to the "any value" set
// is a no-op.
func (vs *ValueSet) AddValue(value Value) {
	if vs.anything || vs.Contains(value) {
		return
	}
	if vs.values == nil {
		vs.values = make(map[Value]struct{})
	}
	vs.values[value] = struct{}{}
}

// AddRange adds the inclusive integer range [low, high] to the set,
// coalescing it with any overlapping or adjacent ranges and removing any
// discrete values the new range subsumes. Adding to the "any value" set is a
// no-op.
func (vs *ValueSet) AddRange(low, high int) {
	if vs.anything {
		return
	}

	// Purge discrete values subsumed by the new range
	for v := range vs.values {
		if i, ok := asInt(v); ok && low <= i && i <= high {
			delete(vs.values, v)
		}
	}

	// Merge with overlapping or touching ranges
	merged := vs.ranges[:0]
	for _, r := range vs.ranges {
		if low <= r.High+1 && r.Low <= high+1 {
			if r.Low < low {
				low = r.Low
			}
			if r.High > high {
				high = r.High
			}
		} else {
			merged = append(merged, r)
		}
	}
	vs.ranges = append(merged, ValueRange{low, high})
}

// Union returns a new set containing every value in either operand. If
// either operand is the "any value" set, so is the result.
func (vs *ValueSet) Union(other *ValueSet) *ValueSet {
	if vs.anything || other.anything {
		return AnyValue()
	}
	out := NewValueSet()
	for v := range vs.values {
		out.AddValue(v)
	}
	for v := range other.values {
		out.AddValue(v)
	}
	for _, r := range vs.ranges {
		out.AddRange(r.Low, r.High)
	}
	for _, r := range other.ranges {
		out.AddRange(r.Low, r.High)
	}
	return out
}

// IsDisjoint tests whether this set and other share no common values. The
// "any value" set is disjoint only from the empty set.
func (vs *ValueSet) IsDisjoint(other *ValueSet) bool {
	if vs.anything {
		return other.IsEmpty()
	}
	if other.anything {
		return vs.IsEmpty()
	}
	for _, pair := range [][2]*ValueSet{{vs, other}, {other, vs}} {
		a, b := pair[0], pair[1]
		for v := range a.values {
			if b.Contains(v) {
				return false
			}
		}
		for _, r := range a.ranges {
			if b.Contains(r.Low) || b.Contains(r.High) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether two sets hold exactly the same values. The
// "any value" set equals only the "any value" set.
func (vs *ValueSet) Equal(other *ValueSet) bool {
	if vs.anything || other.anything {
		return vs.anything == other.anything
	}
	if len(vs.values) != len(other.values) || len(vs.ranges) != len(other.ranges) {
		return false
	}
	for v := range vs.values {
		if _, ok := other.values[v]; !ok {
			return false
		}
	}
	rs := append([]ValueRange(nil), vs.ranges...)
	os := append([]ValueRange(nil), other.ranges...)
	sortRanges(rs)
	sortRanges(os)
	for i := range rs {
		if rs[i] != os[i] {
			return false
		}
	}
	return true
}

// IterValues returns an iterator over every concrete member of the set, with
// ranges expanded element by element, in no particular order. Enumerating the
// "any value" set is a contract violation and fails with
// ErrAnyValueNotEnumerable.
func (vs *ValueSet) IterValues() (iter.Seq[Value], error) {
	if vs.anything {
		return nil, ErrAnyValueNotEnumerable
	}
	return func(yield func(Value) bool) {
		for v := range vs.values {
			if !yield(v) {
				return
			}
		}
		for _, r := range vs.ranges {
			for i := r.Low; i <= r.High; i++ {
				if !yield(i) {
					return
				}
			}
		}
	}, nil
}

// SortedValues returns every concrete member of the set as a slice sorted
// into a stable order (ints ascending, then bools, then strings). Fails with
// ErrAnyValueNotEnumerable for the "any value" set.
func (vs *ValueSet) SortedValues() ([]Value, error) {
	seq, err := vs.IterValues()
	if err != nil {
		return nil, err
	}
	var out []Value
	for v := range seq {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return valueSortKey(out[i]) < valueSortKey(out[j])
	})
	return out, nil
}

// String produces a human-readable description of the permitted values, e.g.
// "{1, 2, 10-20}", "{<no values>}" or "{<any value>}".
func (vs *ValueSet) String() string {
	if vs.anything {
		return "{<any value>}"
	}
	if vs.IsEmpty() {
		return "{<no values>}"
	}
	parts := make([]string, 0, len(vs.values)+len(vs.ranges))
	for v := range vs.values {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	for _, r := range vs.ranges {
		parts = append(parts, fmt.Sprintf("%d-%d", r.Low, r.High))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}

// Copy returns an independent copy of the set.
func (vs *ValueSet) Copy() *ValueSet {
	if vs.anything {
		return AnyValue()
	}
	out := NewValueSet()
	for v := range vs.values {
		out.values[v] = struct{}{}
	}
	out.ranges = append(out.ranges, vs.ranges...)
	return out
}

func asInt(v Value) (int, bool) {
	i, ok := v.(int)
	return i, ok
}

func sortRanges(rs []ValueRange) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Low < rs[j].Low })
}

func valueSortKey(v Value) string {
	switch x := v.(type) {
	case int:
		// Fixed-width so numeric order matches lexical order
		return fmt.Sprintf("0%020d", x+1<<40)
	case bool:
		if x {
			return "1true"
		}
		return "1false"
	default:
		return "2" + fmt.Sprintf("%v", x)
	}
}
