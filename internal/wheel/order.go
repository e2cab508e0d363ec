package wheel

import "sort"

// BackToFront returns the indices of specs in paint order: lower rank first,
// equal ranks in configured order. The last index is the front-most layer,
// which is also the one that receives a click where layers overlap.
func BackToFront(specs []LayerSpec) []int {
	idx := make([]int, len(specs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return specs[idx[a]].Rank < specs[idx[b]].Rank
	})
	return idx
}
