package constraint

// AllowedCombination defines a ValueSet for every key it constrains. A
// combination with no keys is a universal catch-all which matches any
// assignment.
type AllowedCombination map[string]*ValueSet

// Table is an ordered list of allowed combinations. An assignment satisfies
// the table if at least one combination is compatible with it.
type Table []AllowedCombination

// Assignment is a partial, concrete choice of values, keyed like the table.
type Assignment map[string]Value

// compatible reports whether the combination permits the assignment. For
// every assigned key, either the combination does not constrain that key or
// the assigned value is a member of the combination's ValueSet.
func (c AllowedCombination) compatible(assignment Assignment) bool {
	for key, value := range assignment {
		vs, ok := c[key]
		if !ok {
			continue
		}
		if !vs.Contains(value) {
			return false
		}
	}
	return true
}

// FilterTable returns the subset of table entries compatible with the given
// assignment, in their original order. Combinations with no keys always
// survive. The input table is not modified.
func FilterTable(table Table, assignment Assignment) Table {
	out := make(Table, 0, len(table))
	for _, combination := range table {
		if len(combination) == 0 || combination.compatible(assignment) {
			out = append(out, combination)
		}
	}
	return out
}

// IsAllowedCombination checks whether the assignment holds an allowed
// combination of values according to the table.
//
// An assignment containing only a subset of the keys listed in the table is
// allowed if the values it does define are a permitted combination.
func IsAllowedCombination(table Table, assignment Assignment) bool {
	return len(FilterTable(table, assignment)) > 0
}

// AllowedValuesFor returns the union of allowed values for the given key
// across every table entry compatible with the assignment. Entries which do
// not constrain the key contribute nothing; in particular a catch-all entry
// never widens a key's allowed values, it only survives filtering for the
// sake of other keys.
//
// If the union is the "any value" set and anyValue is non-nil, anyValue is
// returned instead. This lets callers substitute a concrete enumeration for
// keys where "anything" is short-hand for a known finite set.
func AllowedValuesFor(table Table, key string, assignment Assignment, anyValue *ValueSet) *ValueSet {
	out := NewValueSet()
	for _, combination := range FilterTable(table, assignment) {
		if vs, ok := combination[key]; ok {
			out = out.Union(vs)
		}
	}
	if out.IsAnyValue() && anyValue != nil {
		return anyValue
	}
	return out
}
