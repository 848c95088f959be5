package models

// StartSignatureSentinel marks the bookkeeping row the cycle engine stores
// alongside real balances. It is never an eligible participant.
const StartSignatureSentinel = "_start_signature"

// ParticipantRecord is the strongly-typed view of one wallet in a
// verification package, joined from the balance snapshots and the
// processed swap stats. Records are immutable once loaded.
type ParticipantRecord struct {
	Wallet       string  `bson:"wallet" json:"wallet"`
	StartBalance float64 `bson:"startBalance" json:"start_balance"`
	FinalBalance float64 `bson:"finalBalance" json:"final_balance"`
	LargestBuy   float64 `bson:"largestBuy" json:"largest_buy"`
	LargestBuyTx string  `bson:"largestBuyTx,omitempty" json:"largest_buy_tx,omitempty"`
	TotalVolume  float64 `bson:"totalVolume" json:"total_volume"`
	Buys         float64 `bson:"buys" json:"buys"`
	Sells        float64 `bson:"sells" json:"sells"`
}

// SeedMaterial carries the publicly verifiable randomness recorded at the
// end of a cycle. The slot is informational; the seed string alone drives
// the generator. Identical seed string means identical draw sequence.
type SeedMaterial struct {
	VerificationSlot int64  `bson:"verificationSlot" json:"verification_slot"`
	VerificationSeed string `bson:"verificationSeed" json:"verification_seed"`
}

// RaffleRules are the eligibility thresholds published inside the package
// metadata.
type RaffleRules struct {
	MinEligibleHoldingAmount float64 `bson:"minEligibleHoldingAmount" json:"min_eligible_holding_amount"`
	MinTradeVolume           float64 `bson:"minTradeVolume" json:"min_trade_volume"`
}

// PackageMetadata mirrors metadata.json inside a verification package.
type PackageMetadata struct {
	CycleID        string `json:"cycle_id"`
	StartSignature string `json:"start_signature"`
	SeedMaterial
	Rules RaffleRules `json:"rules"`
}
