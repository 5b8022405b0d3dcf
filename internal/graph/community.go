package graph

// Communities performs modularity-based clustering on the undirected view
// of the graph (edges symmetrized, self-loops removed), per §4.2. It
// returns a community ID for every node and the total number of
// communities found. The algorithm is a single-level greedy local-moving
// pass (the first phase of Louvain): deterministic ordering is not
// required by the spec, only stable community *identifiers* once computed.
func (g *Graph) Communities() ([]int, int) {
	n := g.N()
	if n == 0 {
		return nil, 0
	}
	adj := g.undirected()

	degree := make([]float64, n)
	var twoM float64
	for i := range adj {
		degree[i] = float64(len(adj[i]))
		twoM += degree[i]
	}
	if twoM == 0 {
		// No edges at all: every node is its own community.
		comm := make([]int, n)
		for i := range comm {
			comm[i] = i
		}
		return renumber(comm)
	}

	comm := make([]int, n)
	commDegreeSum := make([]float64, n) // sum of degrees of nodes in each community
	for i := range comm {
		comm[i] = i
		commDegreeSum[i] = degree[i]
	}

	improved := true
	for pass := 0; improved && pass < 50; pass++ {
		improved = false
		for i := 0; i < n; i++ {
			ci := comm[i]

			// Remove i from its community.
			commDegreeSum[ci] -= degree[i]

			// Weight of i's edges into each neighboring community.
			neighborWeight := make(map[int]float64)
			for _, nb := range adj[i] {
				neighborWeight[comm[nb]]++
			}

			bestComm := ci
			bestGain := neighborWeight[ci] - degree[i]*commDegreeSum[ci]/twoM
			for cand, wIn := range neighborWeight {
				gain := wIn - degree[i]*commDegreeSum[cand]/twoM
				if gain > bestGain {
					bestGain = gain
					bestComm = cand
				}
			}

			comm[i] = bestComm
			commDegreeSum[bestComm] += degree[i]
			if bestComm != ci {
				improved = true
			}
		}
	}

	return renumber(comm)
}

// renumber compacts arbitrary community IDs into a dense 0..k-1 range.
func renumber(raw []int) ([]int, int) {
	mapped := make(map[int]int)
	out := make([]int, len(raw))
	next := 0
	for i, c := range raw {
		id, ok := mapped[c]
		if !ok {
			id = next
			mapped[c] = id
			next++
		}
		out[i] = id
	}
	return out, next
}
