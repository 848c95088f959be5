// Package pkgloader reads a self-contained verification package from
// disk and converts its loosely-typed tables into the strongly-typed
// records the raffle engine consumes. It is a thin I/O wrapper: no
// filtering or weighting happens here beyond dropping the bookkeeping
// sentinel row.
package pkgloader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
	"github.com/pumppot-labs/pumppot-verifier/internal/raffle"
	"golang.org/x/exp/slog"
)

const (
	metadataFile        = "metadata.json"
	initialBalancesFile = "initial_balances.csv"
	cycleStatsFile      = "cycle_stats.csv"
	finalBalancesFile   = "final_balances.csv"
)

// Package is a fully loaded verification package, ready for computation.
type Package struct {
	Name     string
	Metadata models.PackageMetadata
	Records  []models.ParticipantRecord
}

// Load reads a verification package directory. Every required file must
// be present; a missing required field in any row surfaces as a
// raffle.MalformedRecordError rather than propagating as a zero value
// into the selection.
func Load(dir string) (*Package, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("verification directory not found: %s", dir)
	}

	meta, err := loadMetadata(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	initial, err := loadBalances(filepath.Join(dir, initialBalancesFile))
	if err != nil {
		return nil, err
	}
	final, err := loadBalances(filepath.Join(dir, finalBalancesFile))
	if err != nil {
		return nil, err
	}
	stats, err := loadCycleStats(filepath.Join(dir, cycleStatsFile))
	if err != nil {
		return nil, err
	}

	// The final balance table defines the participant set; initial
	// balances and swap stats are joined onto it by wallet. Wallets that
	// traded but hold nothing at cycle end can never be eligible, so they
	// are not materialized as records.
	records := make([]models.ParticipantRecord, 0, len(final))
	for _, wallet := range sortedWallets(final) {
		if wallet == models.StartSignatureSentinel {
			continue
		}
		rec := models.ParticipantRecord{
			Wallet:       wallet,
			FinalBalance: final[wallet],
			StartBalance: initial[wallet],
		}
		if s, ok := stats[wallet]; ok {
			rec.LargestBuy = s.LargestBuy
			rec.LargestBuyTx = s.LargestBuyTx
			rec.TotalVolume = s.TotalVolume
			rec.Buys = s.Buys
			rec.Sells = s.Sells
		}
		records = append(records, rec)
	}

	slog.Info("loaded verification package",
		"package", filepath.Base(dir),
		"initialHolders", len(initial),
		"tradersThisCycle", len(stats),
		"finalHolders", len(records))

	return &Package{
		Name:     filepath.Base(dir),
		Metadata: *meta,
		Records:  records,
	}, nil
}

func loadMetadata(path string) (*models.PackageMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("missing required file in package: %s", filepath.Base(path))
	}
	var meta models.PackageMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &meta, nil
}

// loadBalances reads a two-column (wallet, amount) balance snapshot.
func loadBalances(path string) (map[string]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("missing required file in package: %s", filepath.Base(path))
	}
	defer file.Close()

	name := filepath.Base(path)
	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", name, err)
	}

	walletIdx := findColumnIndex(header, []string{"wallet", "address"})
	amountIdx := findColumnIndex(header, []string{"amount", "balance"})
	if walletIdx == -1 || amountIdx == -1 {
		return nil, fmt.Errorf("required columns not found in %s", name)
	}

	balances := make(map[string]float64)
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row %d: %w", name, row+1, err)
		}
		row++

		wallet := strings.TrimSpace(record[walletIdx])
		if wallet == "" {
			return nil, &raffle.MalformedRecordError{File: name, Row: row, Field: "wallet"}
		}
		amount, err := parseAmount(record[amountIdx])
		if err != nil {
			return nil, &raffle.MalformedRecordError{File: name, Row: row, Field: "amount"}
		}
		balances[wallet] = amount
	}
	return balances, nil
}

// cycleStats is the per-wallet swap summary row of the processed swaps
// table.
type cycleStats struct {
	LargestBuy   float64
	LargestBuyTx string
	TotalVolume  float64
	Buys         float64
	Sells        float64
}

func loadCycleStats(path string) (map[string]cycleStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("missing required file in package: %s", filepath.Base(path))
	}
	defer file.Close()

	name := filepath.Base(path)
	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", name, err)
	}

	walletIdx := findColumnIndex(header, []string{"wallet", "address"})
	largestBuyIdx := findColumnIndex(header, []string{"largest_buy"})
	largestBuyTxIdx := findColumnIndex(header, []string{"largest_buy_tx"})
	totalVolumeIdx := findColumnIndex(header, []string{"total_volume"})
	buysIdx := findColumnIndex(header, []string{"buys"})
	sellsIdx := findColumnIndex(header, []string{"sells"})

	if walletIdx == -1 || largestBuyIdx == -1 || totalVolumeIdx == -1 {
		return nil, fmt.Errorf("required columns not found in %s", name)
	}

	stats := make(map[string]cycleStats)
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row %d: %w", name, row+1, err)
		}
		row++

		wallet := strings.TrimSpace(record[walletIdx])
		if wallet == "" {
			return nil, &raffle.MalformedRecordError{File: name, Row: row, Field: "wallet"}
		}
		largestBuy, err := parseAmount(record[largestBuyIdx])
		if err != nil {
			return nil, &raffle.MalformedRecordError{File: name, Row: row, Field: "largest_buy"}
		}
		totalVolume, err := parseAmount(record[totalVolumeIdx])
		if err != nil {
			return nil, &raffle.MalformedRecordError{File: name, Row: row, Field: "total_volume"}
		}

		s := cycleStats{
			LargestBuy:  largestBuy,
			TotalVolume: totalVolume,
		}
		if largestBuyTxIdx != -1 {
			s.LargestBuyTx = strings.TrimSpace(record[largestBuyTxIdx])
		}
		if buysIdx != -1 && record[buysIdx] != "" {
			if s.Buys, err = parseAmount(record[buysIdx]); err != nil {
				return nil, &raffle.MalformedRecordError{File: name, Row: row, Field: "buys"}
			}
		}
		if sellsIdx != -1 && record[sellsIdx] != "" {
			if s.Sells, err = parseAmount(record[sellsIdx]); err != nil {
				return nil, &raffle.MalformedRecordError{File: name, Row: row, Field: "sells"}
			}
		}
		stats[wallet] = s
	}
	return stats, nil
}

// findColumnIndex finds the index of a column by possible names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}

func parseAmount(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func sortedWallets(balances map[string]float64) []string {
	wallets := make([]string, 0, len(balances))
	for w := range balances {
		wallets = append(wallets, w)
	}
	// Map iteration order is random; the engine re-sorts pools anyway,
	// but a stable record order keeps loader output reproducible too.
	sort.Strings(wallets)
	return wallets
}
