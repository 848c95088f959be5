package raffle

import (
	"testing"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
	"github.com/stretchr/testify/require"
)

// fixedGen returns a predetermined uniform value, so tests can force the
// draw r = v * totalWeight.
type fixedGen struct {
	v float64
}

func (g fixedGen) Float64() float64 { return g.v }

// countingGen counts how many draws a selection consumes.
type countingGen struct {
	draws int
}

func (g *countingGen) Float64() float64 {
	g.draws++
	return 0.5
}

func twoWalletPool() *models.CandidatePool {
	return &models.CandidatePool{
		Category: models.CategoryLottery,
		Candidates: []models.Candidate{
			{Wallet: "walletA", Weight: 10},
			{Wallet: "walletB", Weight: 30},
		},
		TotalWeight: 40,
	}
}

func TestSelectWinnerCumulativeWalk(t *testing.T) {
	// r = 0.625 * 40 = 25: walletA accumulates 10 (not exceeded),
	// walletB accumulates 40 (exceeded).
	result, err := SelectWinner(twoWalletPool(), fixedGen{0.625})
	require.NoError(t, err)

	require.Equal(t, "walletB", result.Wallet)
	require.Equal(t, 75.0, result.WinChancePercent)
	require.Equal(t, 30.0, result.Weight)
	require.Equal(t, 40.0, result.TotalWeight)
	require.Equal(t, 2, result.Contenders)
}

func TestSelectWinnerFirstCandidate(t *testing.T) {
	// r = 0.1 * 40 = 4 < 10: walletA wins.
	result, err := SelectWinner(twoWalletPool(), fixedGen{0.1})
	require.NoError(t, err)

	require.Equal(t, "walletA", result.Wallet)
	require.Equal(t, 25.0, result.WinChancePercent)
}

func TestSelectWinnerBoundaryDraw(t *testing.T) {
	// r lands exactly on walletA's cumulative weight: the walk needs the
	// cumulative sum to strictly exceed r, so walletB wins.
	result, err := SelectWinner(twoWalletPool(), fixedGen{0.25})
	require.NoError(t, err)
	require.Equal(t, "walletB", result.Wallet)
}

func TestSelectWinnerSingleCandidate(t *testing.T) {
	pool := &models.CandidatePool{
		Category:    models.CategoryPowerBuyer,
		Candidates:  []models.Candidate{{Wallet: "walletOnly", Weight: 123.45}},
		TotalWeight: 123.45,
	}

	for _, v := range []float64{0, 0.5, 0.999999} {
		result, err := SelectWinner(pool, fixedGen{v})
		require.NoError(t, err)
		require.Equal(t, "walletOnly", result.Wallet)
		require.Equal(t, 100.0, result.WinChancePercent)
	}
}

func TestSelectWinnerConsumesExactlyOneDraw(t *testing.T) {
	gen := &countingGen{}
	_, err := SelectWinner(twoWalletPool(), gen)
	require.NoError(t, err)
	require.Equal(t, 1, gen.draws)

	// Single-candidate pools consume a draw too; the draw protocol has
	// no conditional skips.
	single := &models.CandidatePool{
		Category:    models.CategoryLottery,
		Candidates:  []models.Candidate{{Wallet: "walletOnly", Weight: 1}},
		TotalWeight: 1,
	}
	gen = &countingGen{}
	_, err = SelectWinner(single, gen)
	require.NoError(t, err)
	require.Equal(t, 1, gen.draws)
}

func TestSelectWinnerEmptyPool(t *testing.T) {
	_, err := SelectWinner(&models.CandidatePool{Category: models.CategoryLottery}, fixedGen{0.5})
	var emptyErr *EmptyPoolError
	require.ErrorAs(t, err, &emptyErr)
	require.Equal(t, models.CategoryLottery, emptyErr.Category)
}

func TestWinChanceConservation(t *testing.T) {
	pool := &models.CandidatePool{
		Category: models.CategoryVolumeKing,
		Candidates: []models.Candidate{
			{Wallet: "w1", Weight: 3.17},
			{Wallet: "w2", Weight: 11.02},
			{Wallet: "w3", Weight: 0.004},
			{Wallet: "w4", Weight: 57.9},
			{Wallet: "w5", Weight: 21.33},
		},
	}
	for _, c := range pool.Candidates {
		pool.TotalWeight += c.Weight
	}

	sum := 0.0
	for _, c := range pool.Candidates {
		sum += WinChancePercent(c.Weight, pool.TotalWeight)
	}
	require.InDelta(t, 100.0, sum, 0.01)
}

func TestWinChanceRounding(t *testing.T) {
	// 1/3 of the pool: 33.33333...% rounds to 4 decimal places.
	require.Equal(t, 33.3333, WinChancePercent(1, 3))
	require.Equal(t, 66.6667, WinChancePercent(2, 3))
	require.Equal(t, 100.0, WinChancePercent(5, 0))
}
