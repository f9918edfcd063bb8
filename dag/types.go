// SPDX-License-Identifier: MIT

package dag

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Sentinel errors for dag operations.
var (
	// ErrNoNodes indicates an attempt to build a Dag without nodes.
	ErrNoNodes = errors.New("dag: no nodes")

	// ErrEmptyName indicates that a node name is the empty string.
	ErrEmptyName = errors.New("dag: node name is empty")

	// ErrDuplicateName indicates that the same node name was given twice.
	ErrDuplicateName = errors.New("dag: duplicate node name")

	// ErrUnknownNode indicates an operation referenced a non-existent node.
	ErrUnknownNode = errors.New("dag: unknown node")

	// ErrSelfLoop indicates an arc from a node to itself.
	ErrSelfLoop = errors.New("dag: self-loop not allowed")

	// ErrEdgeExists indicates that the arc is already present.
	ErrEdgeExists = errors.New("dag: arc already exists")

	// ErrEdgeNotFound indicates that the requested arc does not exist.
	ErrEdgeNotFound = errors.New("dag: arc not found")

	// ErrCycle indicates that the edit would introduce a directed cycle.
	ErrCycle = errors.New("dag: arc would create a cycle")
)

// vertexState marks DFS visitation progress.
type vertexState uint8

const (
	white vertexState = iota // not visited yet
	gray                     // on the recursion stack
	black                    // fully explored
)

// Arc is a directed (source, target) pair of node names.
type Arc struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// String renders the arc as "source -> target".
func (a Arc) String() string { return a.Source + " -> " + a.Target }

// ArcList is an ordered collection of arcs (whitelists, blacklists, results).
type ArcList []Arc

// Dag is a directed acyclic graph over a fixed, indexed node set.
//
// parents[i] has bit j set iff j→i; children[j] mirrors it with bit i.
type Dag struct {
	names    []string
	index    map[string]int
	parents  []*bitset.BitSet
	children []*bitset.BitSet
	numArcs  int
}

// New creates an arc-less Dag over the given node names. Index i of the
// resulting graph is names[i].
//
// Errors:
//   - ErrNoNodes, ErrEmptyName, ErrDuplicateName.
//
// Complexity: O(V).
func New(names []string) (*Dag, error) {
	if len(names) == 0 {
		return nil, ErrNoNodes
	}
	n := len(names)
	d := &Dag{
		names:    make([]string, n),
		index:    make(map[string]int, n),
		parents:  make([]*bitset.BitSet, n),
		children: make([]*bitset.BitSet, n),
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("New: node %d: %w", i, ErrEmptyName)
		}
		if _, dup := d.index[name]; dup {
			return nil, fmt.Errorf("New: %q: %w", name, ErrDuplicateName)
		}
		d.names[i] = name
		d.index[name] = i
		d.parents[i] = bitset.New(uint(n))
		d.children[i] = bitset.New(uint(n))
	}

	return d, nil
}

// FromArcs builds a Dag over names and inserts every arc in order.
// Any insertion error (unknown node, cycle, ...) aborts construction.
func FromArcs(names []string, arcs ArcList) (*Dag, error) {
	d, err := New(names)
	if err != nil {
		return nil, err
	}
	for _, a := range arcs {
		if err = d.AddArc(a.Source, a.Target); err != nil {
			return nil, fmt.Errorf("FromArcs: %w", err)
		}
	}

	return d, nil
}
