package lattice

// Clusters finds the maximal 4-connected regions of equal spin. Each
// cluster is a slice of row-major site indices in BFS order; clusters are
// listed in order of their smallest index.
//
// Time:   O(K²).
// Memory: O(K²) for visited flags and output.
func (c Config) Clusters() [][]int {
	seen := make([]bool, len(c.Spins))
	var comps [][]int

	for i0 := range c.Spins {
		if seen[i0] {
			continue
		}
		spin := c.Spins[i0]
		queue := []int{i0}
		seen[i0] = true

		for qi := 0; qi < len(queue); qi++ {
			ux, uy := c.Coordinate(queue[qi])
			for _, d := range neighborOffsets {
				vx, vy := ux+d[0], uy+d[1]
				if !c.InBounds(vx, vy) {
					continue
				}
				vi := c.Index(vx, vy)
				if !seen[vi] && c.Spins[vi] == spin {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, queue)
	}
	return comps
}

// LargestCluster returns the size of the biggest equal-spin cluster as a
// fraction of K².
func (c Config) LargestCluster() float64 {
	if len(c.Spins) == 0 {
		return 0
	}
	best := 0
	for _, comp := range c.Clusters() {
		best = max(best, len(comp))
	}
	return float64(best) / float64(len(c.Spins))
}
