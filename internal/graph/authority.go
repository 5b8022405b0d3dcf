package graph

// Authority computes a damped-walk (PageRank-style) score for every node:
// standard damped iteration with damping alpha (default 0.85) and uniform
// teleport, converging in practice within ~50 iterations on vault-scale
// graphs (§4.2).
func (g *Graph) Authority(alpha float64) []float64 {
	return g.PersonalizedWalk(alpha, nil, 50)
}

// PersonalizedWalk runs power iteration of a damped walk whose teleport
// distribution concentrates uniformly on seeds (or uniformly over all
// nodes if seeds is empty or names no known title). iterations of ~20 is
// enough for query-time use (§4.2); Authority uses more for a stable
// corpus-wide report.
func (g *Graph) PersonalizedWalk(alpha float64, seeds []string, iterations int) []float64 {
	n := g.N()
	if n == 0 {
		return nil
	}
	if iterations <= 0 {
		iterations = 20
	}

	teleport := make([]float64, n)
	seedIDs := make([]int, 0, len(seeds))
	for _, s := range seeds {
		if id, ok := g.index[s]; ok {
			seedIDs = append(seedIDs, id)
		}
	}
	if len(seedIDs) == 0 {
		uniform := 1.0 / float64(n)
		for i := range teleport {
			teleport[i] = uniform
		}
	} else {
		share := 1.0 / float64(len(seedIDs))
		for _, id := range seedIDs {
			teleport[id] += share
		}
	}

	outDeg := make([]int, n)
	for id := range g.titles {
		outDeg[id] = g.OutDegree(id)
	}

	rank := make([]float64, n)
	copy(rank, teleport)

	for iter := 0; iter < iterations; iter++ {
		next := make([]float64, n)
		var danglingMass float64
		for id := 0; id < n; id++ {
			if outDeg[id] == 0 {
				danglingMass += rank[id]
				continue
			}
			share := rank[id] / float64(outDeg[id])
			for _, dst := range g.forward[id] {
				if dst == int32(id) {
					continue // self-loops ignored by metrics (§3)
				}
				next[dst] += share
			}
		}
		for id := 0; id < n; id++ {
			redistributed := danglingMass * teleport[id]
			next[id] = (1-alpha)*teleport[id] + alpha*(next[id]+redistributed)
		}
		rank = next
	}
	return rank
}

// Components returns the connected-component ID for every node (0-indexed),
// computed over the undirected view, and the total component count. Used
// by graph_metrics() reporting and internally by community detection.
func (g *Graph) Components() ([]int, int) {
	adj := g.undirected()
	n := g.N()
	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	count := 0
	for start := 0; start < n; start++ {
		if comp[start] != -1 {
			continue
		}
		stack := []int32{int32(start)}
		comp[start] = count
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range adj[cur] {
				if comp[nb] == -1 {
					comp[nb] = count
					stack = append(stack, nb)
				}
			}
		}
		count++
	}
	return comp, count
}
