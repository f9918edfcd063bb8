// SPDX-License-Identifier: MIT

// File: topological.go
// Role: topological ordering, cloning and structural equality.

package dag

import "github.com/bits-and-blooms/bitset"

// topoSorter holds DFS state for a topological sort.
type topoSorter struct {
	d     *Dag
	state []vertexState
	order []int // post-order
}

// TopologicalSort returns node names so that every arc u→v has u before v.
// Roots are visited in ascending index order and children in ascending index
// order, so the result is deterministic for a given arc set.
//
// Complexity: O(V+E) time, O(V) memory.
func (d *Dag) TopologicalSort() []string {
	idx := d.TopologicalIndices()
	out := make([]string, len(idx))
	for i, v := range idx {
		out[i] = d.names[v]
	}

	return out
}

// TopologicalIndices is TopologicalSort over indices.
func (d *Dag) TopologicalIndices() []int {
	t := &topoSorter{
		d:     d,
		state: make([]vertexState, len(d.names)),
		order: make([]int, 0, len(d.names)),
	}
	for v := range d.names {
		if t.state[v] == white {
			t.visit(v)
		}
	}
	// reverse post-order
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}

	return t.order
}

func (t *topoSorter) visit(v int) {
	t.state[v] = gray
	for _, c := range members(t.d.children[v]) {
		// gray here would be a back-edge; mutations keep the graph acyclic.
		if t.state[c] == white {
			t.visit(c)
		}
	}
	t.state[v] = black
	t.order = append(t.order, v)
}

// Clone returns a deep copy: same names and indices, independent arc set.
// Complexity: O(V²/64).
func (d *Dag) Clone() *Dag {
	n := len(d.names)
	c := &Dag{
		names:    make([]string, n),
		index:    make(map[string]int, n),
		parents:  make([]*bitset.BitSet, n),
		children: make([]*bitset.BitSet, n),
		numArcs:  d.numArcs,
	}
	copy(c.names, d.names)
	for k, v := range d.index {
		c.index[k] = v
	}
	for i := 0; i < n; i++ {
		c.parents[i] = d.parents[i].Clone()
		c.children[i] = d.children[i].Clone()
	}

	return c
}

// Equal reports whether both graphs have the same node order and arc set.
func (d *Dag) Equal(other *Dag) bool {
	if other == nil || len(d.names) != len(other.names) || d.numArcs != other.numArcs {
		return false
	}
	for i := range d.names {
		if d.names[i] != other.names[i] || !d.parents[i].Equal(other.parents[i]) {
			return false
		}
	}

	return true
}
