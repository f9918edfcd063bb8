// SPDX-License-Identifier: MIT

// File: methods.go
// Role: node catalog queries, arc queries and arc mutations (index and name forms).
// Determinism:
//   - Parents/Children return ascending indices; Arcs() is sorted by (source, target) index.

package dag

import "fmt"

// NumNodes returns the number of nodes. O(1).
func (d *Dag) NumNodes() int { return len(d.names) }

// NumArcs returns the number of arcs. O(1).
func (d *Dag) NumArcs() int { return d.numArcs }

// Name returns the name of node idx, or "" when idx is out of range.
func (d *Dag) Name(idx int) string {
	if !d.valid(idx) {
		return ""
	}

	return d.names[idx]
}

// Index returns the index of name and whether it exists.
func (d *Dag) Index(name string) (int, bool) {
	i, ok := d.index[name]

	return i, ok
}

// Names returns a copy of the node names in index order.
func (d *Dag) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)

	return out
}

// Indices returns a fresh name → index map.
func (d *Dag) Indices() map[string]int {
	out := make(map[string]int, len(d.index))
	for k, v := range d.index {
		out[k] = v
	}

	return out
}

// HasEdge reports whether the arc source→target exists. Out-of-range indices yield false.
// Complexity: O(1).
func (d *Dag) HasEdge(source, target int) bool {
	if !d.valid(source) || !d.valid(target) {
		return false
	}

	return d.parents[target].Test(uint(source))
}

// HasArc is the name-addressed form of HasEdge.
func (d *Dag) HasArc(source, target string) bool {
	s, ok1 := d.index[source]
	t, ok2 := d.index[target]

	return ok1 && ok2 && d.parents[t].Test(uint(s))
}

// NumParents returns the indegree of node idx. O(1) amortized (popcount).
func (d *Dag) NumParents(idx int) int {
	if !d.valid(idx) {
		return 0
	}

	return int(d.parents[idx].Count())
}

// Parents returns the parent indices of idx in ascending order.
// The returned slice is freshly allocated and owned by the caller.
func (d *Dag) Parents(idx int) []int {
	if !d.valid(idx) {
		return nil
	}

	return members(d.parents[idx])
}

// Children returns the child indices of idx in ascending order.
func (d *Dag) Children(idx int) []int {
	if !d.valid(idx) {
		return nil
	}

	return members(d.children[idx])
}

// Arcs returns every arc sorted by (source index, target index).
func (d *Dag) Arcs() ArcList {
	out := make(ArcList, 0, d.numArcs)
	for s := range d.names {
		for _, t := range members(d.children[s]) {
			out = append(out, Arc{Source: d.names[s], Target: d.names[t]})
		}
	}

	return out
}

// AddEdge inserts source→target.
//
// Errors:
//   - ErrUnknownNode, ErrSelfLoop, ErrEdgeExists, ErrCycle.
//
// Complexity: O(V+E) for the cycle check.
func (d *Dag) AddEdge(source, target int) error {
	if err := d.checkPair(source, target); err != nil {
		return fmt.Errorf("AddEdge(%d,%d): %w", source, target, err)
	}
	if d.HasEdge(source, target) {
		return fmt.Errorf("AddEdge(%s,%s): %w", d.names[source], d.names[target], ErrEdgeExists)
	}
	if d.hasPath(target, source, -1, -1) {
		return fmt.Errorf("AddEdge(%s,%s): %w", d.names[source], d.names[target], ErrCycle)
	}
	d.link(source, target)

	return nil
}

// RemoveEdge deletes source→target.
//
// Errors:
//   - ErrUnknownNode, ErrSelfLoop, ErrEdgeNotFound.
//
// Complexity: O(1).
func (d *Dag) RemoveEdge(source, target int) error {
	if err := d.checkPair(source, target); err != nil {
		return fmt.Errorf("RemoveEdge(%d,%d): %w", source, target, err)
	}
	if !d.HasEdge(source, target) {
		return fmt.Errorf("RemoveEdge(%s,%s): %w", d.names[source], d.names[target], ErrEdgeNotFound)
	}
	d.unlink(source, target)

	return nil
}

// FlipEdge replaces source→target with target→source.
//
// Errors:
//   - ErrUnknownNode, ErrSelfLoop, ErrEdgeNotFound, ErrCycle (another path source⇝target exists).
func (d *Dag) FlipEdge(source, target int) error {
	if err := d.checkPair(source, target); err != nil {
		return fmt.Errorf("FlipEdge(%d,%d): %w", source, target, err)
	}
	if !d.HasEdge(source, target) {
		return fmt.Errorf("FlipEdge(%s,%s): %w", d.names[source], d.names[target], ErrEdgeNotFound)
	}
	if d.hasPath(source, target, source, target) {
		return fmt.Errorf("FlipEdge(%s,%s): %w", d.names[source], d.names[target], ErrCycle)
	}
	d.unlink(source, target)
	d.link(target, source)

	return nil
}

// AddArc is the name-addressed form of AddEdge.
func (d *Dag) AddArc(source, target string) error {
	s, t, err := d.resolve(source, target)
	if err != nil {
		return fmt.Errorf("AddArc: %w", err)
	}

	return d.AddEdge(s, t)
}

// RemoveArc is the name-addressed form of RemoveEdge.
func (d *Dag) RemoveArc(source, target string) error {
	s, t, err := d.resolve(source, target)
	if err != nil {
		return fmt.Errorf("RemoveArc: %w", err)
	}

	return d.RemoveEdge(s, t)
}

// FlipArc is the name-addressed form of FlipEdge.
func (d *Dag) FlipArc(source, target string) error {
	s, t, err := d.resolve(source, target)
	if err != nil {
		return fmt.Errorf("FlipArc: %w", err)
	}

	return d.FlipEdge(s, t)
}

// link and unlink keep both bitset rows and the arc counter in sync.
func (d *Dag) link(s, t int) {
	d.parents[t].Set(uint(s))
	d.children[s].Set(uint(t))
	d.numArcs++
}

func (d *Dag) unlink(s, t int) {
	d.parents[t].Clear(uint(s))
	d.children[s].Clear(uint(t))
	d.numArcs--
}

func (d *Dag) valid(idx int) bool { return idx >= 0 && idx < len(d.names) }

func (d *Dag) checkPair(s, t int) error {
	if !d.valid(s) || !d.valid(t) {
		return ErrUnknownNode
	}
	if s == t {
		return ErrSelfLoop
	}

	return nil
}

func (d *Dag) resolve(source, target string) (int, int, error) {
	s, ok := d.index[source]
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", source, ErrUnknownNode)
	}
	t, ok := d.index[target]
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", target, ErrUnknownNode)
	}

	return s, t, nil
}
