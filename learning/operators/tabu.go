// SPDX-License-Identifier: MIT

package operators

// TabuSet holds operators by structural identity: inserting the same edit
// with another delta keeps a single entry, and Contains ignores delta.
// The zero value is not usable; call NewTabuSet.
type TabuSet struct {
	set map[Key]Operator
}

// NewTabuSet returns an empty set.
func NewTabuSet() *TabuSet {
	return &TabuSet{set: make(map[Key]Operator)}
}

// Insert adds op, replacing a structurally equal entry.
func (t *TabuSet) Insert(op Operator) { t.set[op.Key()] = op }

// Contains reports whether a structurally equal operator is in the set.
func (t *TabuSet) Contains(op Operator) bool {
	_, ok := t.set[op.Key()]

	return ok
}

// Clear empties the set.
func (t *TabuSet) Clear() { clear(t.set) }

// Empty reports whether the set has no entries. A nil set is empty.
func (t *TabuSet) Empty() bool { return t == nil || len(t.set) == 0 }

// Len returns the number of entries.
func (t *TabuSet) Len() int { return len(t.set) }

// Clone returns an independent copy.
func (t *TabuSet) Clone() *TabuSet {
	c := &TabuSet{set: make(map[Key]Operator, len(t.set))}
	for k, v := range t.set {
		c.set[k] = v
	}

	return c
}
