package constraint

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSetContains(t *testing.T) {
	tests := []struct {
		name  string
		set   *ValueSet
		value Value
		want  bool
	}{
		{"empty set", NewValueSet(), 100, false},
		{"single value hit", NewValueSet(100), 100, true},
		{"single value miss", NewValueSet(100), 200, false},
		{"range below", NewValueSet(ValueRange{10, 20}), 9, false},
		{"range low bound", NewValueSet(ValueRange{10, 20}), 10, true},
		{"range inside", NewValueSet(ValueRange{10, 20}), 15, true},
		{"range high bound inclusive", NewValueSet(ValueRange{10, 20}), 20, true},
		{"range above", NewValueSet(ValueRange{10, 20}), 21, false},
		{"mixed values and ranges", NewValueSet(100, 200, ValueRange{300, 400}), 350, true},
		{"mixed miss", NewValueSet(100, 200, ValueRange{300, 400}), 500, false},
		{"non numeric hit", NewValueSet("foo", "bar"), "foo", true},
		{"non numeric miss", NewValueSet("foo", "bar"), "nope", false},
		{"bool", NewValueSet(true), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Contains(tt.value))
		})
	}
}

func TestAnyValueContainsEverything(t *testing.T) {
	any := AnyValue()
	assert.True(t, any.Contains(123))
	assert.True(t, any.Contains("foo"))
	assert.True(t, any.Contains(false))
	assert.True(t, any.IsAnyValue())
	assert.False(t, any.IsEmpty())
}

func TestValueSetCoalescing(t *testing.T) {
	t.Run("overlapping ranges merge", func(t *testing.T) {
		vs := NewValueSet()
		vs.AddRange(10, 20)
		vs.AddRange(15, 30)
		assert.Equal(t, []ValueRange{{10, 30}}, vs.ranges)
	})

	t.Run("touching ranges merge", func(t *testing.T) {
		vs := NewValueSet()
		vs.AddRange(10, 20)
		vs.AddRange(21, 30)
		assert.Equal(t, []ValueRange{{10, 30}}, vs.ranges)
	})

	t.Run("disjoint ranges stay separate", func(t *testing.T) {
		vs := NewValueSet()
		vs.AddRange(10, 20)
		vs.AddRange(30, 40)
		assert.Len(t, vs.ranges, 2)
	})

	t.Run("range bridges existing ranges", func(t *testing.T) {
		vs := NewValueSet()
		vs.AddRange(10, 20)
		vs.AddRange(30, 40)
		vs.AddRange(18, 32)
		assert.Equal(t, []ValueRange{{10, 40}}, vs.ranges)
	})

	t.Run("range subsumes discrete values", func(t *testing.T) {
		vs := NewValueSet(5, 15, 25)
		vs.AddRange(10, 20)
		assert.True(t, vs.Contains(15))
		assert.NotContains(t, vs.values, 15)
		assert.Contains(t, vs.values, 5)
		assert.Contains(t, vs.values, 25)
	})

	t.Run("adding subsumed value is a no-op", func(t *testing.T) {
		vs := NewValueSet(ValueRange{10, 20})
		vs.AddValue(15)
		assert.Empty(t, vs.values)
		assert.True(t, vs.Contains(15))
	})

	t.Run("duplicate value is a no-op", func(t *testing.T) {
		vs := NewValueSet(1)
		vs.AddValue(1)
		assert.Len(t, vs.values, 1)
	})
}

func TestValueSetUnion(t *testing.T) {
	a := NewValueSet(123)
	b := NewValueSet(ValueRange{10, 20})

	u := a.Union(b)
	assert.True(t, u.Contains(123))
	assert.True(t, u.Contains(15))
	assert.False(t, u.Contains(122))

	// Operands unchanged
	assert.False(t, a.Contains(15))
	assert.False(t, b.Contains(123))

	t.Run("any value absorbs", func(t *testing.T) {
		assert.True(t, a.Union(AnyValue()).IsAnyValue())
		assert.True(t, AnyValue().Union(a).IsAnyValue())
		assert.True(t, AnyValue().Union(AnyValue()).IsAnyValue())
	})
}

func TestValueSetIsDisjoint(t *testing.T) {
	tests := []struct {
		name string
		a, b *ValueSet
		want bool
	}{
		{"both empty", NewValueSet(), NewValueSet(), true},
		{"distinct values", NewValueSet(1, 2), NewValueSet(3, 4), true},
		{"shared value", NewValueSet(1, 2), NewValueSet(2, 3), false},
		{"distinct ranges", NewValueSet(ValueRange{0, 10}), NewValueSet(ValueRange{20, 30}), true},
		{"overlapping ranges", NewValueSet(ValueRange{0, 10}), NewValueSet(ValueRange{5, 15}), false},
		{"value inside range", NewValueSet(5), NewValueSet(ValueRange{0, 10}), false},
		{"range containing value", NewValueSet(ValueRange{0, 10}), NewValueSet(5), false},
		{"any vs empty", AnyValue(), NewValueSet(), true},
		{"any vs non-empty", AnyValue(), NewValueSet(1), false},
		{"any vs any", AnyValue(), AnyValue(), false},
		{"non-empty vs any", NewValueSet(1), AnyValue(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.IsDisjoint(tt.b))
		})
	}
}

func TestValueSetEqual(t *testing.T) {
	assert.True(t, NewValueSet(1, 2).Equal(NewValueSet(2, 1)))
	assert.True(t, NewValueSet(ValueRange{1, 5}).Equal(NewValueSet(ValueRange{1, 5})))
	assert.False(t, NewValueSet(1).Equal(NewValueSet(2)))
	assert.False(t, NewValueSet(1).Equal(AnyValue()))
	assert.False(t, AnyValue().Equal(NewValueSet(1)))
	assert.True(t, AnyValue().Equal(AnyValue()))

	// Coalesced representations compare equal regardless of insertion order
	a := NewValueSet()
	a.AddRange(0, 5)
	a.AddRange(6, 10)
	b := NewValueSet(ValueRange{0, 10})
	assert.True(t, a.Equal(b))
}

func TestIterValues(t *testing.T) {
	vs := NewValueSet(1, 100, ValueRange{5, 8})
	seq, err := vs.IterValues()
	require.NoError(t, err)

	var got []int
	for v := range seq {
		got = append(got, v.(int))
	}
	sort.Ints(got)
	assert.Equal(t, []int{1, 5, 6, 7, 8, 100}, got)
}

func TestIterValuesAnyValueFails(t *testing.T) {
	_, err := AnyValue().IterValues()
	require.ErrorIs(t, err, ErrAnyValueNotEnumerable)

	_, err = AnyValue().SortedValues()
	require.ErrorIs(t, err, ErrAnyValueNotEnumerable)
}

func TestSortedValues(t *testing.T) {
	vs := NewValueSet(10, 2, ValueRange{4, 6})
	got, err := vs.SortedValues()
	require.NoError(t, err)
	assert.Equal(t, []Value{2, 4, 5, 6, 10}, got)
}

func TestValueSetString(t *testing.T) {
	assert.Equal(t, "{<no values>}", NewValueSet().String())
	assert.Equal(t, "{<any value>}", AnyValue().String())
	assert.Equal(t, "{1, 10-20, 2}", NewValueSet(1, 2, ValueRange{10, 20}).String())
}
