package models

// Category identifies one prize category of a reward cycle.
type Category string

const (
	CategoryPowerBuyer   Category = "power_buyer"
	CategoryVolumeKing   Category = "volume_king"
	CategoryActiveHolder Category = "active_holder"
	CategoryLottery      Category = "lottery"
)

// AllCategories returns every prize category in draw order. The order is
// a compatibility contract: the shared generator is consumed in exactly
// this sequence, so reordering would change historical winners.
func AllCategories() []Category {
	return []Category{
		CategoryPowerBuyer,
		CategoryVolumeKing,
		CategoryActiveHolder,
		CategoryLottery,
	}
}

// Candidate is one (wallet, weight) pair inside a candidate pool.
type Candidate struct {
	Wallet string  `bson:"wallet" json:"wallet"`
	Weight float64 `bson:"weight" json:"weight"`
}

// CandidatePool is the eligible, weighted participant set for one prize
// category, sorted by wallet address. Weight is strictly positive for
// every member.
type CandidatePool struct {
	Category    Category    `bson:"category" json:"category"`
	Candidates  []Candidate `bson:"candidates" json:"candidates"`
	TotalWeight float64     `bson:"totalWeight" json:"total_weight"`
}

// SelectionResult records a resolved category: the winning wallet, the
// exact win chance used, and the auxiliary fields an auditor needs to
// cross-check the draw.
type SelectionResult struct {
	Category         Category `bson:"category" json:"category"`
	Wallet           string   `bson:"wallet" json:"wallet"`
	WinChancePercent float64  `bson:"winChancePercent" json:"win_chance_percent"`
	Weight           float64  `bson:"weight" json:"weight"`
	TotalWeight      float64  `bson:"totalWeight" json:"total_weight"`
	Metric           float64  `bson:"metric" json:"metric"`
	Contenders       int      `bson:"contenders" json:"contenders"`

	// Category-specific extras, carried through unchanged from the
	// winning record.
	TxSignature  string  `bson:"txSignature,omitempty" json:"tx_signature,omitempty"`
	Buys         float64 `bson:"buys,omitempty" json:"buys,omitempty"`
	Sells        float64 `bson:"sells,omitempty" json:"sells,omitempty"`
	StartBalance float64 `bson:"startBalance,omitempty" json:"start_balance,omitempty"`
	FinalBalance float64 `bson:"finalBalance,omitempty" json:"final_balance,omitempty"`
}

// CategoryOutcome is the per-category slot in a report: either a winner
// or the reason no winner could be drawn. A failed category never aborts
// the rest of the report.
type CategoryOutcome struct {
	Category Category         `bson:"category" json:"category"`
	Winner   *SelectionResult `bson:"winner,omitempty" json:"winner,omitempty"`
	Failure  string           `bson:"failure,omitempty" json:"failure,omitempty"`
}

// CycleReport is the full output of one verification computation.
type CycleReport struct {
	CycleID         string            `bson:"cycleId" json:"cycle_id,omitempty"`
	Seed            SeedMaterial      `bson:"seed" json:"seed"`
	Outcomes        []CategoryOutcome `bson:"outcomes" json:"outcomes"`
	TotalRecords    int               `bson:"totalRecords" json:"total_records"`
	EligibleWallets int               `bson:"eligibleWallets" json:"eligible_wallets"`
}

// Outcome returns the outcome for a category, or nil if the report does
// not contain it.
func (r *CycleReport) Outcome(category Category) *CategoryOutcome {
	for i := range r.Outcomes {
		if r.Outcomes[i].Category == category {
			return &r.Outcomes[i]
		}
	}
	return nil
}
