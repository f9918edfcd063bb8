// SPDX-License-Identifier: MIT

// File: reach.go
// Role: reachability and the legality queries built on it (CanAddEdge, CanFlipEdge).

package dag

import "github.com/bits-and-blooms/bitset"

// CanAddEdge reports whether source→target can be inserted without creating a
// cycle: the nodes differ, the arc is absent, and target does not reach source.
//
// Complexity: O(V+E).
func (d *Dag) CanAddEdge(source, target int) bool {
	if d.checkPair(source, target) != nil || d.HasEdge(source, target) {
		return false
	}

	return !d.hasPath(target, source, -1, -1)
}

// CanFlipEdge reports whether the existing arc source→target can be reversed:
// reversal is legal iff no directed path source⇝target exists besides the arc itself.
//
// Complexity: O(V+E).
func (d *Dag) CanFlipEdge(source, target int) bool {
	if d.checkPair(source, target) != nil || !d.HasEdge(source, target) {
		return false
	}

	return !d.hasPath(source, target, source, target)
}

// hasPath runs an iterative DFS over children from `from`, ignoring the single
// arc skipS→skipT (pass -1,-1 to ignore nothing).
func (d *Dag) hasPath(from, to, skipS, skipT int) bool {
	if from == to {
		return true
	}
	visited := bitset.New(uint(len(d.names)))
	stack := make([]int, 0, 8)
	stack = append(stack, from)
	visited.Set(uint(from))

	var (
		u  int
		ch uint
		ok bool
	)
	for len(stack) > 0 {
		u = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for ch, ok = d.children[u].NextSet(0); ok; ch, ok = d.children[u].NextSet(ch + 1) {
			v := int(ch)
			if u == skipS && v == skipT {
				continue
			}
			if v == to {
				return true
			}
			if !visited.Test(ch) {
				visited.Set(ch)
				stack = append(stack, v)
			}
		}
	}

	return false
}

// members lists set bits in ascending order.
func members(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}

	return out
}
