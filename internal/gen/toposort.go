package gen

import (
	"errors"
	"fmt"
	"slices"
)

// dependencyOrder returns the indices 0..n-1 reordered so that each index
// follows everything prereqs reports for it. When several indices are free
// the lowest goes first, so input order breaks ties.
func dependencyOrder(n int, prereqs func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	waiting := make([]int, n)
	unblocks := make([][]int, n)

	for i := range n {
		for _, dep := range prereqs(i) {
			if dep < 0 || dep >= n {
				return nil, fmt.Errorf("context %d depends on unknown context %d", i, dep)
			}

			waiting[i]++
			unblocks[dep] = append(unblocks[dep], i)
		}
	}

	var free []int

	for i, w := range waiting {
		if w == 0 {
			free = append(free, i)
		}
	}

	order := make([]int, 0, n)

	for len(free) > 0 {
		next := free[0]
		free = free[1:]
		order = append(order, next)

		for _, j := range unblocks[next] {
			if waiting[j]--; waiting[j] == 0 {
				pos, _ := slices.BinarySearch(free, j)
				free = slices.Insert(free, pos, j)
			}
		}
	}

	if len(order) != n {
		return nil, errors.New("dependency cycle between contexts")
	}

	return order, nil
}
