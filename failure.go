// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package schemaguard

// Failure is one node in a validation failure tree. A node with SubErrors is
// an aggregate produced by a composite keyword (anyOf, allOf, ...) and never
// carries a reportable message itself; only leaves do.
type Failure struct {
	// Keyword names the violated schema rule ("required", "type", "enum", ...).
	Keyword string

	// DataPointer locates the offending value in the instance document.
	// Array indices appear as decimal strings. May be empty for root-level
	// or schema-level failures.
	DataPointer []string

	// KeywordArgs holds keyword-specific metadata, e.g. "expected"/"used"
	// for "type" or "missing" for "required".
	KeywordArgs map[string]any

	SubErrors []*Failure
}

// Outcome is the result of evaluating an instance against a schema.
type Outcome struct {
	// Failures holds the top-level failure nodes, empty on success.
	Failures []*Failure
}

func (o Outcome) Valid() bool { return len(o.Failures) == 0 }

// Flatten collects the leaf nodes of a failure tree in depth-first,
// left-to-right order. It uses an explicit worklist, so nesting depth is
// bounded by available memory rather than the call stack.
func Flatten(roots []*Failure) []*Failure {
	var leaves []*Failure

	stack := make([]*Failure, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(n.SubErrors) == 0 {
			leaves = append(leaves, n)
			continue
		}

		for i := len(n.SubErrors) - 1; i >= 0; i-- {
			stack = append(stack, n.SubErrors[i])
		}
	}

	return leaves
}
