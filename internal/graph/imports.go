// Package graph builds the import-dependency graph over a batch of
// extraction results: files and their resolved import targets as vertices,
// directives as directed edges.
package graph

import (
	"errors"
	"path"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/codescope-dev/codescope/internal/extract"
)

// Node is one vertex: a file from the batch or an external import target.
type Node struct {
	ID       string `json:"id"`
	External bool   `json:"external"`
	Language string `json:"language,omitempty"`
}

// ImportGraph is the directed dependency graph for one batch. Build it
// once per batch; reads need no locking afterwards.
type ImportGraph struct {
	g            graph.Graph[string, *Node]
	nodes        map[string]*Node
	dependencies map[string][]string
	dependents   map[string][]string
}

// Build assembles the graph from extraction results. Import targets are
// resolved against batch files by exact path, then by base name; anything
// unresolved becomes an external node.
func Build(contexts []*extract.FileContext) (*ImportGraph, error) {
	ig := &ImportGraph{
		g:            graph.New(func(n *Node) string { return n.ID }, graph.Directed()),
		nodes:        make(map[string]*Node),
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
	}

	byPath := make(map[string]string)
	byBase := make(map[string]string)
	for _, fc := range contexts {
		if err := ig.addNode(&Node{ID: fc.Path, Language: fc.Language}); err != nil {
			return nil, err
		}
		byPath[fc.Path] = fc.Path
		byBase[path.Base(fc.Path)] = fc.Path
	}

	for _, fc := range contexts {
		for _, imp := range fc.Imports {
			target := resolveTarget(imp.Target, byPath, byBase)
			if target == "" {
				continue
			}
			if _, ok := ig.nodes[target]; !ok {
				if err := ig.addNode(&Node{ID: target, External: true}); err != nil {
					return nil, err
				}
			}
			if target == fc.Path {
				continue
			}

			// Duplicate directives collapse to one edge.
			if err := ig.g.AddEdge(fc.Path, target); err != nil &&
				!errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, err
			}
			if !contains(ig.dependencies[fc.Path], target) {
				ig.dependencies[fc.Path] = append(ig.dependencies[fc.Path], target)
				ig.dependents[target] = append(ig.dependents[target], fc.Path)
			}
		}
	}

	for _, deps := range ig.dependencies {
		sort.Strings(deps)
	}
	for _, deps := range ig.dependents {
		sort.Strings(deps)
	}

	return ig, nil
}

func (ig *ImportGraph) addNode(n *Node) error {
	ig.nodes[n.ID] = n
	return ig.g.AddVertex(n)
}

// resolveTarget maps an import target onto a batch file when one matches,
// otherwise keeps the raw target as an external ID.
func resolveTarget(target string, byPath, byBase map[string]string) string {
	if target == "" {
		return ""
	}
	if p, ok := byPath[target]; ok {
		return p
	}
	if p, ok := byBase[path.Base(target)]; ok {
		return p
	}
	return target
}

// Node returns a vertex by ID.
func (ig *ImportGraph) Node(id string) (*Node, bool) {
	n, ok := ig.nodes[id]
	return n, ok
}

// Nodes returns all vertex IDs, sorted.
func (ig *ImportGraph) Nodes() []string {
	ids := make([]string, 0, len(ig.nodes))
	for id := range ig.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Dependencies returns what a file imports, sorted.
func (ig *ImportGraph) Dependencies(id string) []string {
	return ig.dependencies[id]
}

// Dependents returns which files import a target, sorted.
func (ig *ImportGraph) Dependents(id string) []string {
	return ig.dependents[id]
}

// Cycles returns the import cycles in the batch: every strongly connected
// component with more than one member, members sorted, components ordered
// by first member.
func (ig *ImportGraph) Cycles() ([][]string, error) {
	sccs, err := graph.StronglyConnectedComponents(ig.g)
	if err != nil {
		return nil, err
	}

	var cycles [][]string
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		sort.Strings(scc)
		cycles = append(cycles, scc)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})

	return cycles, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
