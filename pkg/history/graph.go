// Copyright © 2018 One Concern

package history

import (
	"sort"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/semver"
)

// Graph of versions
type Graph struct {
	parents map[model.ParentRef][]model.ParentRef
}

// NewGraph builds an empty version graph
func NewGraph() *Graph {
	return &Graph{parents: make(map[model.ParentRef][]model.ParentRef)}
}

// Add a version node with its parents. Adding a node again appends parents.
func (g *Graph) Add(node model.ParentRef, parents ...model.ParentRef) {
	existing := g.parents[node]
	for _, p := range parents {
		if !containsRef(existing, p) {
			existing = append(existing, p)
		}
	}
	g.parents[node] = existing
}

// AddEntries adds the version entries recorded for a document
func (g *Graph) AddEntries(identity model.Identity, entries []model.VersionEntry) {
	for _, e := range entries {
		g.Add(model.ParentRef{Identity: identity, Version: e.Version}, e.Parents...)
	}
}

// Has tells if a version node is known
func (g *Graph) Has(node model.ParentRef) bool {
	_, ok := g.parents[node]
	return ok
}

// Len yields the number of nodes
func (g *Graph) Len() int {
	return len(g.parents)
}

// Parents of a version node
func (g *Graph) Parents(node model.ParentRef) []model.ParentRef {
	return g.parents[node]
}

// HasParents tells if any version node of identity records a parent
func (g *Graph) HasParents(identity model.Identity) bool {
	for node, parents := range g.parents {
		if node.Identity == identity && len(parents) > 0 {
			return true
		}
	}
	return false
}

// Identities referenced as parents but without any node in the graph
func (g *Graph) MissingIdentities() []model.Identity {
	known := make(map[model.Identity]struct{})
	for node := range g.parents {
		known[node.Identity] = struct{}{}
	}
	missing := make(map[model.Identity]struct{})
	for _, parents := range g.parents {
		for _, p := range parents {
			if _, ok := known[p.Identity]; !ok {
				missing[p.Identity] = struct{}{}
			}
		}
	}
	ids := make([]model.Identity, 0, len(missing))
	for id := range missing {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Ancestors yields all ancestors of node, including node itself, with their distance to node
func (g *Graph) Ancestors(node model.ParentRef) map[model.ParentRef]int {
	distances := map[model.ParentRef]int{node: 0}
	queue := []model.ParentRef{node}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, p := range g.parents[current] {
			if _, seen := distances[p]; seen {
				continue
			}
			distances[p] = distances[current] + 1
			queue = append(queue, p)
		}
	}
	return distances
}

// CommonAncestor yields the lowest common ancestor of two version nodes.
//
// A common ancestor is lowest when it is not an ancestor of another common ancestor. When several
// qualify (criss-cross merges), the closest to both nodes wins, then the highest version.
func (g *Graph) CommonAncestor(a, b model.ParentRef) (model.ParentRef, bool) {
	ancestorsOfA := g.Ancestors(a)
	ancestorsOfB := g.Ancestors(b)

	common := make([]model.ParentRef, 0)
	for node := range ancestorsOfA {
		if _, ok := ancestorsOfB[node]; ok {
			common = append(common, node)
		}
	}
	if len(common) == 0 {
		return model.ParentRef{}, false
	}

	lowest := make([]model.ParentRef, 0, len(common))
	for _, candidate := range common {
		dominated := false
		for _, other := range common {
			if other == candidate {
				continue
			}
			if _, ok := g.Ancestors(other)[candidate]; ok {
				dominated = true
				break
			}
		}
		if !dominated {
			lowest = append(lowest, candidate)
		}
	}

	sort.Slice(lowest, func(i, j int) bool {
		di := ancestorsOfA[lowest[i]] + ancestorsOfB[lowest[i]]
		dj := ancestorsOfA[lowest[j]] + ancestorsOfB[lowest[j]]
		if di != dj {
			return di < dj
		}
		if lowest[i].Version != lowest[j].Version {
			return semver.Less(lowest[j].Version, lowest[i].Version)
		}
		return lowest[i].Identity < lowest[j].Identity
	})
	return lowest[0], true
}

func containsRef(refs []model.ParentRef, ref model.ParentRef) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}
