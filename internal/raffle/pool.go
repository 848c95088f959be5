package raffle

import (
	"sort"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
)

// UniversallyEligible reports whether a record passes the cycle-wide
// holding threshold that gates every category.
func UniversallyEligible(rec models.ParticipantRecord, rules models.RaffleRules) bool {
	if rec.Wallet == models.StartSignatureSentinel {
		return false
	}
	return rec.FinalBalance >= rules.MinEligibleHoldingAmount
}

// BuildPool filters records to those eligible for the category, maps each
// to its weighted candidate, and sorts the pool by wallet address. The
// canonical sort means the input row order of the source tables never
// influences a draw. Every returned candidate has weight > 0.
func BuildPool(records []models.ParticipantRecord, category models.Category, rules models.RaffleRules) (*models.CandidatePool, error) {
	candidates := make([]models.Candidate, 0, len(records))
	for _, rec := range records {
		if !UniversallyEligible(rec, rules) {
			continue
		}
		weight, ok := categoryWeight(rec, category, rules)
		if !ok || weight <= 0 {
			continue
		}
		candidates = append(candidates, models.Candidate{Wallet: rec.Wallet, Weight: weight})
	}
	if len(candidates) == 0 {
		return nil, &EmptyPoolError{Category: category, RecordsSeen: len(records)}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Wallet < candidates[j].Wallet
	})

	total := 0.0
	for _, c := range candidates {
		total += c.Weight
	}
	return &models.CandidatePool{
		Category:    category,
		Candidates:  candidates,
		TotalWeight: total,
	}, nil
}

// categoryWeight maps a record to its weight for a category, and reports
// whether the record is eligible for it at all.
func categoryWeight(rec models.ParticipantRecord, category models.Category, rules models.RaffleRules) (float64, bool) {
	switch category {
	case models.CategoryPowerBuyer:
		return rec.LargestBuy, rec.LargestBuy > 0
	case models.CategoryVolumeKing:
		return rec.TotalVolume, rec.TotalVolume >= rules.MinTradeVolume
	case models.CategoryActiveHolder:
		net := rec.FinalBalance - rec.StartBalance
		if net < 0 {
			return 0, false
		}
		return net + 0.25*rec.StartBalance, true
	case models.CategoryLottery:
		// Uniform draw: every eligible wallet carries the same weight.
		return 1.0, true
	default:
		return 0, false
	}
}
