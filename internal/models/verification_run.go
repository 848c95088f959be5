package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunStatus represents the status of a verification run
type RunStatus string

const (
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusPartial   RunStatus = "PARTIAL" // at least one category had no eligible winner
	RunStatusFailed    RunStatus = "FAILED"
)

// VerificationRun is the persisted audit record of one verification of a
// cycle package. The computation itself is pure; the run record exists so
// past verifications can be looked up and cross-checked.
type VerificationRun struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PackageName  string             `bson:"packageName" json:"package_name"`
	CycleID      string             `bson:"cycleId,omitempty" json:"cycle_id,omitempty"`
	Seed         SeedMaterial       `bson:"seed" json:"seed"`
	Status       RunStatus          `bson:"status" json:"status"`
	Report       *CycleReport       `bson:"report,omitempty" json:"report,omitempty"`
	ErrorMessage string             `bson:"errorMessage,omitempty" json:"error_message,omitempty"`
	DurationMs   int64              `bson:"durationMs" json:"duration_ms"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
}
