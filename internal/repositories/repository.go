package repositories

import (
	"context"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VerificationRunRepository defines the interface for verification-run data operations
type VerificationRunRepository interface {
	Create(ctx context.Context, run *models.VerificationRun) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.VerificationRun, error)
	FindByCycleID(ctx context.Context, cycleID string) ([]*models.VerificationRun, error)
	FindRecent(ctx context.Context, page, limit int) ([]*models.VerificationRun, error)
	Count(ctx context.Context) (int64, error)
}

// AdminUserRepository defines the interface for admin account operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
