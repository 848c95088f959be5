// Package report renders a cycle report as the human-readable text
// auditors cross-check against a published result. Pure formatting; no
// computation happens here.
package report

import (
	"fmt"
	"strings"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
)

const separator = "=================================================="

// Format renders the verification report in its fixed layout.
func Format(rep *models.CycleReport) string {
	var b strings.Builder

	b.WriteString("--- Verification Result: Calculated Winners ---\n")
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Seed: %s (slot %d)\n", rep.Seed.VerificationSeed, rep.Seed.VerificationSlot)
	fmt.Fprintf(&b, "Participants: %d records, %d eligible wallets\n", rep.TotalRecords, rep.EligibleWallets)

	for _, outcome := range rep.Outcomes {
		fmt.Fprintf(&b, "\n%s:\n", categoryTitle(outcome.Category))
		if outcome.Winner == nil {
			b.WriteString("  - No eligible winner was found for this category.\n")
			continue
		}
		w := outcome.Winner
		fmt.Fprintf(&b, "  - Wallet:       %s\n", w.Wallet)
		fmt.Fprintf(&b, "  - Win Chance:   %.4f%%\n", w.WinChancePercent)
		if w.Category == models.CategoryActiveHolder {
			fmt.Fprintf(&b, "  - Holdings:     %.2f (Started with %.2f)\n", w.FinalBalance, w.StartBalance)
		} else {
			fmt.Fprintf(&b, "  - Metric Value: %.2f\n", w.Metric)
		}
		fmt.Fprintf(&b, "  - Contenders:   %d\n", w.Contenders)
		if w.TxSignature != "" {
			fmt.Fprintf(&b, "  - Winning TX:   %s\n", w.TxSignature)
		}
		if w.Category == models.CategoryVolumeKing {
			fmt.Fprintf(&b, "  - Breakdown:    Buys=%.2f, Sells=%.2f\n", w.Buys, w.Sells)
		}
	}

	b.WriteString("\n" + separator + "\n")
	b.WriteString("Verification finished successfully.\n")
	b.WriteString("This result is deterministic: re-running against the same package always yields the same winners.\n")
	return b.String()
}

// categoryTitle turns "power_buyer" into "Power Buyer".
func categoryTitle(category models.Category) string {
	words := strings.Split(string(category), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
