// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package graph implements the basis graph: a generic, concurrency-safe DAG
// of nodes identified by opaque ids, carrying a polymorphic payload (raw DOM
// data in a document graph, mutable interpretation annotations in a basis
// graph).
//
// # Ownership model
//
// Nodes are shared: after cyclisation a single node may be reachable from
// many parents, and the parent list is a pure back-reference, never an
// ownership edge — a node's lifetime is owned by the Go garbage collector,
// not by any single parent. Each node guards its own parent/child slices
// with a private mutex, so graph-shape mutation (pruning, cyclising,
// absorbing) and graph-shape reads (BFS, lineage walks) never race so long
// as mutation is single-threaded relative to itself, as the concurrency
// model in SPEC_FULL.md §5 requires.
package graph

import (
	"sync"

	"github.com/google/uuid"
)

// RootNodeHash is the sentinel shape-hash of the synthetic root a basis
// graph is rooted at; it never matches a real DOM node's shape-hash.
const RootNodeHash = "root-node-hash-sentinel"

// Payload is the data a Node carries. It mirrors the Rust GraphNodeData
// trait's describe() half; the new()-from-description half is supplied
// separately as a Factory, since Go generics cannot express "a type
// parameter has a constructor" the way a trait method can.
type Payload interface {
	Describe() string
}

// Factory builds a fresh payload value from a human-readable description,
// used when a node is deep-copied into a new graph and needs a payload of
// its own rather than a shared reference to the original's.
type Factory[T Payload] func(description string) T

// Node is one vertex of a graph. Its id is a stable opaque handle used for
// identity comparisons and serialization; its Hash is the structural
// shape-hash described in SPEC_FULL.md §3.
type Node[T Payload] struct {
	mu       sync.RWMutex
	ID       string
	Hash     string
	Data     T
	parents  []*Node[T]
	children []*Node[T]
}

// New constructs a node with a fresh id.
func New[T Payload](hash string, data T, parents []*Node[T]) *Node[T] {
	return &Node[T]{
		ID:      uuid.NewString(),
		Hash:    hash,
		Data:    data,
		parents: append([]*Node[T]{}, parents...),
	}
}

// NewWithID constructs a node carrying a caller-supplied id rather than a
// freshly generated one, for reconstructing a graph whose node identities
// must survive a round trip through persist.SerializeGraph /
// persist.DeserializeGraph.
func NewWithID[T Payload](id, hash string, data T) *Node[T] {
	return &Node[T]{
		ID:   id,
		Hash: hash,
		Data: data,
	}
}

// FromVoid builds the synthetic root sentinel a basis graph is rooted at.
func FromVoid[T Payload](factory Factory[T]) *Node[T] {
	return &Node[T]{
		ID:   uuid.NewString(),
		Hash: RootNodeHash,
		Data: factory("blank"),
	}
}

// Parents returns a snapshot copy of the node's parent list.
func (n *Node[T]) Parents() []*Node[T] {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Node[T], len(n.parents))
	copy(out, n.parents)
	return out
}

// Children returns a snapshot copy of the node's child list.
func (n *Node[T]) Children() []*Node[T] {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Node[T], len(n.children))
	copy(out, n.children)
	return out
}

// SetParents replaces the node's parent list wholesale.
func (n *Node[T]) SetParents(parents []*Node[T]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.parents = append([]*Node[T]{}, parents...)
}

// SetChildren replaces the node's child list wholesale.
func (n *Node[T]) SetChildren(children []*Node[T]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.children = append([]*Node[T]{}, children...)
}

// AppendChild adds a child, skipping the append if the same node (by
// identity) is already present. This closes the duplicate-entry gap the
// original port left as an explicit TODO in its merge logic.
func (n *Node[T]) AppendChild(child *Node[T]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range n.children {
		if c == child {
			return
		}
	}
	n.children = append(n.children, child)
}

// AppendParent adds a parent, deduplicated by identity (see AppendChild).
func (n *Node[T]) AppendParent(parent *Node[T]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, p := range n.parents {
		if p == parent {
			return
		}
	}
	n.parents = append(n.parents, parent)
}

// ReplaceChild removes old from the child list (by id) and appends
// replacement (deduplicated).
func (n *Node[T]) ReplaceChild(old, replacement *Node[T]) {
	n.mu.Lock()
	filtered := make([]*Node[T], 0, len(n.children))
	for _, c := range n.children {
		if c.ID != old.ID {
			filtered = append(filtered, c)
		}
	}
	n.children = filtered
	n.mu.Unlock()
	n.AppendChild(replacement)
}

// ReplaceParent removes old from the parent list (by id) and appends
// replacement (deduplicated).
func (n *Node[T]) ReplaceParent(old, replacement *Node[T]) {
	n.mu.Lock()
	filtered := make([]*Node[T], 0, len(n.parents))
	for _, p := range n.parents {
		if p.ID != old.ID {
			filtered = append(filtered, p)
		}
	}
	n.parents = filtered
	n.mu.Unlock()
	n.AppendParent(replacement)
}

// RemoveChild drops a child (by id) with no replacement.
func (n *Node[T]) RemoveChild(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	filtered := make([]*Node[T], 0, len(n.children))
	for _, c := range n.children {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	n.children = filtered
}

// IsLinear reports whether n has exactly one parent and one child.
func (n *Node[T]) IsLinear() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.children) == 1 && len(n.parents) == 1
}

// IsLinearHead reports whether n is linear but its parent is not — the
// start of a linear chain.
func (n *Node[T]) IsLinearHead() bool {
	if !n.IsLinear() {
		return false
	}
	parents := n.Parents()
	return !parents[0].IsLinear()
}

// IsLinearTail reports whether n is linear and is not the head of its
// chain.
func (n *Node[T]) IsLinearTail() bool {
	return n.IsLinear() && !n.IsLinearHead()
}
