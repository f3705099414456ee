package optim

import (
	"context"
	"errors"
	"math"
)

// Objective scores one parameter combination; lower is better. An error
// skips the combination.
type Objective func(params map[string]float64) (float64, error)

// GridSearch exhaustively evaluates the cartesian product of parameter
// ranges.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Search returns the best parameters and their score. Ties keep the
// first combination in grid order.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, errors.New("optim: parameter names and ranges differ in length")
	}
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, map[string]float64{}, objective, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, errors.New("optim: no parameter combination could be evaluated")
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		val, err := objective(current)
		if err != nil || math.IsNaN(val) {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val
		if err := g.searchRecursive(ctx, depth+1, next, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
