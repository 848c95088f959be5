package raffle

import (
	"math"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
)

// Generator yields the uniform draws consumed during winner selection.
// The concrete generator comes from DeriveGenerator; tests substitute
// fixed draws.
type Generator interface {
	Float64() float64
}

// WinChanceDecimals is the fixed precision every win chance is reported
// at, in percent.
const WinChanceDecimals = 4

// SelectWinner draws exactly one winner from the pool with probability
// proportional to weight (roulette-wheel sampling): one uniform value r
// in [0, total) is drawn, and the winner is the first candidate, in
// canonical pool order, whose cumulative weight exceeds r.
//
// Exactly one draw is consumed per call, unconditionally — including for
// single-candidate pools — so the draw sequence a shared generator
// produces across categories is identical on every run. Ties in weight
// are broken purely by the draw position, never by a secondary key.
func SelectWinner(pool *models.CandidatePool, gen Generator) (models.SelectionResult, error) {
	if pool == nil || len(pool.Candidates) == 0 {
		e := &EmptyPoolError{}
		if pool != nil {
			e.Category = pool.Category
		}
		return models.SelectionResult{}, e
	}

	r := gen.Float64() * pool.TotalWeight

	// Fall back to the last candidate so accumulated float error at the
	// top of the interval can never leave the pool winnerless.
	winner := pool.Candidates[len(pool.Candidates)-1]
	upto := 0.0
	for _, c := range pool.Candidates {
		upto += c.Weight
		if upto > r {
			winner = c
			break
		}
	}

	return models.SelectionResult{
		Category:         pool.Category,
		Wallet:           winner.Wallet,
		Weight:           winner.Weight,
		TotalWeight:      pool.TotalWeight,
		WinChancePercent: WinChancePercent(winner.Weight, pool.TotalWeight),
		Contenders:       len(pool.Candidates),
	}, nil
}

// WinChancePercent reports weight/total as a percentage, rounded to the
// fixed precision used everywhere in the report.
func WinChancePercent(weight, total float64) float64 {
	if total <= 0 {
		return 100.0
	}
	scale := math.Pow(10, WinChanceDecimals)
	return math.Round(weight/total*100*scale) / scale
}
