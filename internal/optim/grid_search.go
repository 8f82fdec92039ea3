// Package optim searches parameter grids for the combination with the
// lowest cost, exhaustively. The grids in this repository are small,
// gain tables and initial condition sweeps, brute force is the honest
// tool.
package optim

import (
	"context"
	"math"
)

// Evaluate flies or computes one grid point and returns its cost. An
// error drops the point from the search.
type Evaluate func(ctx context.Context, params map[string]float64) (float64, error)

// GridSearch walks every combination of the named parameters over
// their candidate values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch pairs parameter names with their candidate values,
// index for index.
func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every grid point and returns the parameters with
// the smallest cost. With every point failed or an empty grid the
// parameters come back nil and the cost infinite. Cancelling the
// context stops the walk with its error.
func (g *GridSearch) Search(ctx context.Context, evaluate Evaluate) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), evaluate, &best, &bestParams)

	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	evaluate Evaluate,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := evaluate(ctx, current)
		if err != nil {
			return nil
		}

		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, evaluate, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
