package report

import (
	"strings"
	"testing"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.CycleReport {
	return &models.CycleReport{
		CycleID:         "2025-10-28T14_30",
		Seed:            models.SeedMaterial{VerificationSlot: 123456789, VerificationSeed: "ABC123"},
		TotalRecords:    4,
		EligibleWallets: 3,
		Outcomes: []models.CategoryOutcome{
			{
				Category: models.CategoryPowerBuyer,
				Winner: &models.SelectionResult{
					Category:         models.CategoryPowerBuyer,
					Wallet:           "walletB",
					WinChancePercent: 75.0,
					Metric:           30,
					Contenders:       2,
					TxSignature:      "txB123",
				},
			},
			{
				Category: models.CategoryVolumeKing,
				Winner: &models.SelectionResult{
					Category:         models.CategoryVolumeKing,
					Wallet:           "walletC",
					WinChancePercent: 33.3333,
					Metric:           160,
					Contenders:       3,
					Buys:             100,
					Sells:            60,
				},
			},
			{
				Category: models.CategoryActiveHolder,
				Winner: &models.SelectionResult{
					Category:         models.CategoryActiveHolder,
					Wallet:           "walletA",
					WinChancePercent: 50.0,
					Metric:           300,
					Contenders:       2,
					StartBalance:     100,
					FinalBalance:     300,
				},
			},
			{
				Category: models.CategoryLottery,
				Failure:  `no eligible candidates for category "lottery" (4 records seen)`,
			},
		},
	}
}

func TestFormatContainsAuditFields(t *testing.T) {
	out := Format(sampleReport())

	require.Contains(t, out, "Seed: ABC123 (slot 123456789)")
	require.Contains(t, out, "Participants: 4 records, 3 eligible wallets")

	require.Contains(t, out, "Power Buyer:")
	require.Contains(t, out, "walletB")
	require.Contains(t, out, "75.0000%")
	require.Contains(t, out, "Winning TX:   txB123")

	require.Contains(t, out, "Volume King:")
	require.Contains(t, out, "33.3333%")
	require.Contains(t, out, "Breakdown:    Buys=100.00, Sells=60.00")

	require.Contains(t, out, "Active Holder:")
	require.Contains(t, out, "Holdings:     300.00 (Started with 100.00)")

	require.Contains(t, out, "Lottery:")
	require.Contains(t, out, "No eligible winner was found for this category.")
}

func TestFormatDeterministic(t *testing.T) {
	require.Equal(t, Format(sampleReport()), Format(sampleReport()))
}

func TestFormatActiveHolderOmitsMetricLine(t *testing.T) {
	out := Format(sampleReport())
	// Active Holder shows holdings instead of the generic metric line.
	section := out[strings.Index(out, "Active Holder:"):]
	section = section[:strings.Index(section, "Lottery:")]
	require.NotContains(t, section, "Metric Value")
}
