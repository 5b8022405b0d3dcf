package graph

// Betweenness computes unweighted betweenness centrality over the
// undirected view using Brandes' algorithm. Computed for reporting only;
// the composite scorer never consumes it (§4.2).
func (g *Graph) Betweenness() []float64 {
	n := g.N()
	bc := make([]float64, n)
	if n == 0 {
		return bc
	}
	adj := g.undirected()

	for s := 0; s < n; s++ {
		stack := make([]int, 0, n)
		preds := make([][]int, n)
		sigma := make([]float64, n)
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		sigma[s] = 1
		dist[s] = 0

		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w32 := range adj[v] {
				w := int(w32)
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != s {
				bc[w] += delta[w]
			}
		}
	}

	// Undirected graph: each shortest path counted from both endpoints.
	for i := range bc {
		bc[i] /= 2
	}
	return bc
}
