package graph

import "strings"

// Bridges returns the set of node ids satisfying any of the four
// conditions in §4.2: classic articulation points, in-degree hubs (more
// than hubMultiplier times the median in-degree), role-based naming
// ("... map" / "index"), or cross-project connectors (>=2 project tags and
// in-degree >= 3).
func (g *Graph) Bridges(hubMultiplier float64) map[int]bool {
	bridges := make(map[int]bool)

	for id := range g.articulationPoints() {
		bridges[id] = true
	}

	median := g.medianInDegree()
	for id := range g.titles {
		indeg := g.InDegree(id)
		if median > 0 && float64(indeg) > hubMultiplier*median {
			bridges[id] = true
		}
		title := strings.ToLower(g.titles[id])
		if strings.HasSuffix(title, " map") || title == "index" {
			bridges[id] = true
		}
		if len(g.Projects[id]) >= 2 && indeg >= 3 {
			bridges[id] = true
		}
	}

	return bridges
}

// articulationPoints runs the standard low-link DFS on the undirected view.
func (g *Graph) articulationPoints() map[int]bool {
	n := g.N()
	adj := g.undirected()

	disc := make([]int, n)
	low := make([]int, n)
	visited := make([]bool, n)
	isAP := make(map[int]bool)
	timer := 0

	var dfs func(u, parent int)
	dfs = func(u, parent int) {
		visited[u] = true
		timer++
		disc[u] = timer
		low[u] = timer
		children := 0

		for _, v32 := range adj[u] {
			v := int(v32)
			if v == parent {
				continue
			}
			if visited[v] {
				if disc[v] < low[u] {
					low[u] = disc[v]
				}
				continue
			}
			children++
			dfs(v, u)
			if low[v] < low[u] {
				low[u] = low[v]
			}
			if parent != -1 && low[v] >= disc[u] {
				isAP[u] = true
			}
		}
		if parent == -1 && children > 1 {
			isAP[u] = true
		}
	}

	for u := 0; u < n; u++ {
		if !visited[u] {
			dfs(u, -1)
		}
	}
	return isAP
}
