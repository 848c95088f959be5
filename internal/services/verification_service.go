package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
	"github.com/pumppot-labs/pumppot-verifier/internal/pkgloader"
	"github.com/pumppot-labs/pumppot-verifier/internal/raffle"
	"github.com/pumppot-labs/pumppot-verifier/internal/repositories"
	"github.com/pumppot-labs/pumppot-verifier/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// VerificationService defines the interface for verification operations
type VerificationService interface {
	VerifyPackage(ctx context.Context, packageName string) (*models.VerificationRun, error)
	GetRunByID(ctx context.Context, id primitive.ObjectID) (*models.VerificationRun, error)
	GetRunsByCycleID(ctx context.Context, cycleID string) ([]*models.VerificationRun, error)
	GetRecentRuns(ctx context.Context, page, limit int) ([]*models.VerificationRun, error)
	GetRunCount(ctx context.Context) (int64, error)
}

// Compile-time check to ensure VerificationServiceImpl implements VerificationService
var _ VerificationService = (*VerificationServiceImpl)(nil)

// VerificationServiceImpl orchestrates loading a cycle package, running
// the deterministic winner computation, and recording the run for audit.
type VerificationServiceImpl struct {
	runRepo      repositories.VerificationRunRepository
	packagesRoot string
}

// NewVerificationService creates a new VerificationServiceImpl
func NewVerificationService(runRepo repositories.VerificationRunRepository, packagesRoot string) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		runRepo:      runRepo,
		packagesRoot: packagesRoot,
	}
}

// VerifyPackage verifies the named package under the configured packages
// root and persists the run record, failed runs included. The returned
// error reflects the verification outcome; a run record is returned in
// either case when one could be recorded.
func (s *VerificationServiceImpl) VerifyPackage(ctx context.Context, packageName string) (*models.VerificationRun, error) {
	if packageName == "" || packageName != filepath.Base(packageName) || strings.HasPrefix(packageName, ".") {
		return nil, fmt.Errorf("invalid package name: %q", packageName)
	}

	start := time.Now()
	run := &models.VerificationRun{
		PackageName: packageName,
		CreatedAt:   start,
	}

	pkg, err := pkgloader.Load(filepath.Join(s.packagesRoot, packageName))
	if err != nil {
		slog.Error("Failed to load verification package", "error", err, "package", packageName)
		return s.finishRun(ctx, run, start, nil, fmt.Errorf("failed to load package: %w", err))
	}

	run.CycleID = pkg.Metadata.CycleID
	run.Seed = pkg.Metadata.SeedMaterial

	report, err := raffle.ComputeWinners(pkg.Records, pkg.Metadata.SeedMaterial, pkg.Metadata.Rules)
	if err != nil {
		slog.Error("Winner computation failed", "error", err, "package", packageName)
		return s.finishRun(ctx, run, start, nil, fmt.Errorf("winner computation failed: %w", err))
	}
	report.CycleID = pkg.Metadata.CycleID

	for _, outcome := range report.Outcomes {
		if outcome.Winner != nil {
			slog.Info("Category winner re-derived",
				"package", packageName,
				"category", outcome.Category,
				"wallet", utils.MaskWallet(outcome.Winner.Wallet),
				"winChancePercent", outcome.Winner.WinChancePercent)
		}
	}

	return s.finishRun(ctx, run, start, report, nil)
}

// finishRun stamps status and timing on the run, persists it, and folds
// any persistence failure into the returned error.
func (s *VerificationServiceImpl) finishRun(ctx context.Context, run *models.VerificationRun, start time.Time, report *models.CycleReport, verifyErr error) (*models.VerificationRun, error) {
	run.DurationMs = time.Since(start).Milliseconds()
	run.Report = report

	switch {
	case verifyErr != nil:
		run.Status = models.RunStatusFailed
		run.ErrorMessage = verifyErr.Error()
	case hasFailedCategory(report):
		run.Status = models.RunStatusPartial
	default:
		run.Status = models.RunStatusCompleted
	}

	if err := s.runRepo.Create(ctx, run); err != nil {
		slog.Error("Failed to persist verification run", "error", err, "package", run.PackageName)
		if verifyErr != nil {
			return run, verifyErr
		}
		return run, fmt.Errorf("failed to persist verification run: %w", err)
	}

	slog.Info("Verification run recorded",
		"package", run.PackageName, "status", run.Status, "durationMs", run.DurationMs)
	return run, verifyErr
}

func hasFailedCategory(report *models.CycleReport) bool {
	if report == nil {
		return false
	}
	for _, outcome := range report.Outcomes {
		if outcome.Winner == nil {
			return true
		}
	}
	return false
}

// GetRunByID retrieves a verification run by ID.
func (s *VerificationServiceImpl) GetRunByID(ctx context.Context, id primitive.ObjectID) (*models.VerificationRun, error) {
	run, err := s.runRepo.FindByID(ctx, id)
	if err != nil {
		slog.Error("Failed to get verification run", "error", err, "runId", id)
		return nil, fmt.Errorf("failed to retrieve verification run: %w", err)
	}
	return run, nil
}

// GetRunsByCycleID retrieves all verification runs recorded for a cycle.
func (s *VerificationServiceImpl) GetRunsByCycleID(ctx context.Context, cycleID string) ([]*models.VerificationRun, error) {
	runs, err := s.runRepo.FindByCycleID(ctx, cycleID)
	if err != nil {
		slog.Error("Failed to get verification runs by cycle", "error", err, "cycleId", cycleID)
		return nil, fmt.Errorf("failed to retrieve verification runs: %w", err)
	}
	return runs, nil
}

// GetRecentRuns retrieves verification runs with pagination, newest first.
func (s *VerificationServiceImpl) GetRecentRuns(ctx context.Context, page, limit int) ([]*models.VerificationRun, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	runs, err := s.runRepo.FindRecent(ctx, page, limit)
	if err != nil {
		slog.Error("Failed to get recent verification runs", "error", err)
		return nil, fmt.Errorf("failed to retrieve verification runs: %w", err)
	}
	return runs, nil
}

// GetRunCount counts all recorded verification runs.
func (s *VerificationServiceImpl) GetRunCount(ctx context.Context) (int64, error) {
	count, err := s.runRepo.Count(ctx)
	if err != nil {
		slog.Error("Failed to count verification runs", "error", err)
		return 0, fmt.Errorf("failed to count verification runs: %w", err)
	}
	return count, nil
}
