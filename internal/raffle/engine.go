package raffle

import (
	"errors"
	"fmt"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
	"golang.org/x/exp/slog"
)

// ComputeWinners re-derives every category winner of one reward cycle.
//
// Categories are resolved in the fixed order of models.AllCategories,
// each consuming exactly one draw from the shared generator. A category
// with no eligible candidates is recorded as a failure in the report and
// consumes no draw; only a seed derivation failure aborts the whole run.
func ComputeWinners(records []models.ParticipantRecord, seed models.SeedMaterial, rules models.RaffleRules) (*models.CycleReport, error) {
	gen, err := DeriveGenerator(seed.VerificationSeed)
	if err != nil {
		return nil, fmt.Errorf("derive generator from seed (slot %d): %w", seed.VerificationSlot, err)
	}

	byWallet := make(map[string]models.ParticipantRecord, len(records))
	eligible := 0
	for _, rec := range records {
		byWallet[rec.Wallet] = rec
		if UniversallyEligible(rec, rules) {
			eligible++
		}
	}

	report := &models.CycleReport{
		Seed:            seed,
		TotalRecords:    len(records),
		EligibleWallets: eligible,
	}

	for _, category := range models.AllCategories() {
		outcome := models.CategoryOutcome{Category: category}

		pool, err := BuildPool(records, category, rules)
		if err != nil {
			var emptyErr *EmptyPoolError
			if !errors.As(err, &emptyErr) {
				return nil, fmt.Errorf("build pool for %s: %w", category, err)
			}
			slog.Warn("category resolved without a winner",
				"category", category, "recordsSeen", emptyErr.RecordsSeen)
			outcome.Failure = err.Error()
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		result, err := SelectWinner(pool, gen)
		if err != nil {
			outcome.Failure = err.Error()
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		attachWinnerDetails(&result, byWallet[result.Wallet])
		outcome.Winner = &result
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report, nil
}

// attachWinnerDetails copies the metric value and category-specific
// auxiliary fields from the winning record onto the result, unchanged.
func attachWinnerDetails(result *models.SelectionResult, rec models.ParticipantRecord) {
	switch result.Category {
	case models.CategoryPowerBuyer:
		result.Metric = rec.LargestBuy
		result.TxSignature = rec.LargestBuyTx
	case models.CategoryVolumeKing:
		result.Metric = rec.TotalVolume
		result.Buys = rec.Buys
		result.Sells = rec.Sells
	case models.CategoryActiveHolder:
		result.Metric = rec.FinalBalance
		result.StartBalance = rec.StartBalance
		result.FinalBalance = rec.FinalBalance
	case models.CategoryLottery:
		result.Metric = rec.FinalBalance
	}
}
