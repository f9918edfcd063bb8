// SPDX-License-Identifier: MIT

// Package dag implements the index-addressed directed acyclic graph that
// structure-learning models are built on.
//
// What:
//
//   - Dag: a fixed node set (names ↔ dense indices 0..n-1) and a mutable arc set.
//     Each node keeps a parents row and a children row as bitsets, so HasEdge
//     and NumParents are O(1) and parent enumeration is O(n/64 + |pa|).
//   - Acyclicity queries used by local search: CanAddEdge (no path target⇝source)
//     and CanFlipEdge (no path source⇝target other than the arc itself).
//   - TopologicalSort: reverse DFS post-order with white/gray/black marks.
//
// Why:
//
//   - Operator sets address candidate edits by node index; name lookups stay at
//     the boundary (whitelists, operators, logs).
//   - Mutations preserve acyclicity: AddEdge and FlipEdge reject cycle-creating
//     edits with ErrCycle, so every reachable Dag state is a DAG.
//
// Concurrency:
//
//   - A Dag is not safe for concurrent mutation. One search owns one Dag; use
//     Clone to hand an independent copy to another goroutine.
//
// Errors:
//
//   - ErrNoNodes, ErrEmptyName, ErrDuplicateName at construction
//   - ErrUnknownNode, ErrSelfLoop, ErrEdgeExists, ErrEdgeNotFound, ErrCycle on mutation
//
// Complexity:
//
//   - AddEdge/CanAddEdge/CanFlipEdge: O(V+E) reachability; RemoveEdge: O(1).
//   - TopologicalSort: O(V+E).
package dag
