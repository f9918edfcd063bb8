// SPDX-License-Identifier: MIT

package operators

import "errors"

// Sentinel errors. All of them are construction-time contract errors: a set or
// pool that was built successfully never fails during search.
var (
	// ErrIncompatibleModel indicates a model lacking a capability the operator
	// needs (ChangeNodeType on a network without node types).
	ErrIncompatibleModel = errors.New("operators: model does not support this operator")

	// ErrIncompatibleScore indicates a score that does not support the model kind
	// or lacks the NodeTypeScore capability.
	ErrIncompatibleScore = errors.New("operators: score does not support this model")

	// ErrNoOperatorSets indicates an OperatorPool built without operator sets.
	ErrNoOperatorSets = errors.New("operators: no operator sets")

	// ErrUnknownNode indicates a whitelist, blacklist or operator naming a node
	// the model does not have.
	ErrUnknownNode = errors.New("operators: unknown node")

	// ErrListConflict indicates an arc present in both whitelist and blacklist.
	ErrListConflict = errors.New("operators: arc both whitelisted and blacklisted")
)
