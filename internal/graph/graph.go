// Package graph builds the link graph from a corpus and computes its
// structural metrics: authority, communities, bridges, betweenness, and
// personalized walks (spec §4.2).
//
// Per §9 "Cyclic ownership", nodes are held in a flat arena indexed by
// integer ID; adjacency is two index slices (forward/reverse), never
// node-to-node pointers.
package graph

import (
	"sort"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

// Graph is the directed link graph over a corpus's notes.
type Graph struct {
	titles  []string       // id -> title
	index   map[string]int // title -> id
	forward [][]int32      // id -> outgoing target ids (simple: deduped, no self-loops filtered here)
	reverse [][]int32      // id -> incoming source ids

	// Dangling holds link targets that name no existing note, with their
	// source ids.
	Dangling map[string][]string // target title -> source titles
	Projects [][]string          // id -> project tags, needed by the cross-project bridge rule
}

// Build constructs a Graph from parsed notes. Multi-edges collapse to a
// single edge; self-loops are kept in the adjacency (so backlink counts are
// correct) but every metric in this package ignores them, per §3.
func Build(notes []*models.Note) *Graph {
	g := &Graph{index: make(map[string]int, len(notes))}

	for _, n := range notes {
		g.index[n.Title] = len(g.titles)
		g.titles = append(g.titles, n.Title)
	}
	g.forward = make([][]int32, len(g.titles))
	g.reverse = make([][]int32, len(g.titles))
	g.Projects = make([][]string, len(g.titles))
	g.Dangling = make(map[string][]string)

	for _, n := range notes {
		srcID := g.index[n.Title]
		g.Projects[srcID] = n.Project

		seen := make(map[int32]struct{}, len(n.Links))
		for _, target := range n.Links {
			dstID, ok := g.index[target]
			if !ok {
				g.Dangling[target] = append(g.Dangling[target], n.Title)
				continue
			}
			id32 := int32(dstID)
			if _, dup := seen[id32]; dup {
				continue
			}
			seen[id32] = struct{}{}
			g.forward[srcID] = append(g.forward[srcID], id32)
			g.reverse[dstID] = append(g.reverse[dstID], int32(srcID))
		}
	}
	return g
}

// N returns the number of nodes.
func (g *Graph) N() int { return len(g.titles) }

// Title returns the title for node id.
func (g *Graph) Title(id int) string { return g.titles[id] }

// ID returns the node id for title, or (-1, false) if absent.
func (g *Graph) ID(title string) (int, bool) {
	id, ok := g.index[title]
	if !ok {
		return -1, false
	}
	return id, true
}

// OutDegree and InDegree report edge counts, excluding self-loops.
func (g *Graph) OutDegree(id int) int { return countNonSelf(g.forward[id], int32(id)) }
func (g *Graph) InDegree(id int) int  { return countNonSelf(g.reverse[id], int32(id)) }

func countNonSelf(edges []int32, self int32) int {
	n := 0
	for _, e := range edges {
		if e != self {
			n++
		}
	}
	return n
}

// Backlinks returns the titles of notes that link to target.
func (g *Graph) Backlinks(target string) []string {
	id, ok := g.index[target]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.reverse[id]))
	for _, src := range g.reverse[id] {
		if src == int32(id) {
			continue
		}
		out = append(out, g.titles[src])
	}
	return out
}

// Orphans returns titles with zero incoming links (ignoring self-loops).
func (g *Graph) Orphans() []string {
	var out []string
	for id, title := range g.titles {
		if g.InDegree(id) == 0 {
			out = append(out, title)
		}
	}
	sort.Strings(out)
	return out
}

// DanglingTargets returns link targets that name no existing note.
func (g *Graph) DanglingTargets() []string {
	out := make([]string, 0, len(g.Dangling))
	for t := range g.Dangling {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// CrossProject returns titles that carry two or more distinct project tags.
func (g *Graph) CrossProject() []string {
	var out []string
	for id, title := range g.titles {
		if len(g.Projects[id]) >= 2 {
			out = append(out, title)
		}
	}
	sort.Strings(out)
	return out
}

// medianInDegree returns the median in-degree across all nodes, used by the
// hub-bridge rule (§4.2 condition b).
func (g *Graph) medianInDegree() float64 {
	if len(g.titles) == 0 {
		return 0
	}
	degs := make([]int, len(g.titles))
	for id := range g.titles {
		degs[id] = g.InDegree(id)
	}
	sort.Ints(degs)
	mid := len(degs) / 2
	if len(degs)%2 == 0 {
		return float64(degs[mid-1]+degs[mid]) / 2
	}
	return float64(degs[mid])
}

// undirected returns a symmetric adjacency list (self-loops removed, edges
// de-duplicated), used by community detection, bridges, and betweenness.
func (g *Graph) undirected() [][]int32 {
	adj := make([][]int32, len(g.titles))
	seen := make([]map[int32]struct{}, len(g.titles))
	for i := range seen {
		seen[i] = make(map[int32]struct{})
	}
	add := func(a, b int32) {
		if a == b {
			return
		}
		if _, ok := seen[a][b]; ok {
			return
		}
		seen[a][b] = struct{}{}
		adj[a] = append(adj[a], b)
	}
	for id := range g.titles {
		for _, dst := range g.forward[id] {
			add(int32(id), dst)
			add(dst, int32(id))
		}
	}
	return adj
}
