package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memoryRunRepo is an in-memory VerificationRunRepository for tests.
type memoryRunRepo struct {
	runs      []*models.VerificationRun
	createErr error
}

func (r *memoryRunRepo) Create(_ context.Context, run *models.VerificationRun) error {
	if r.createErr != nil {
		return r.createErr
	}
	run.ID = primitive.NewObjectID()
	r.runs = append(r.runs, run)
	return nil
}

func (r *memoryRunRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.VerificationRun, error) {
	for _, run := range r.runs {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memoryRunRepo) FindByCycleID(_ context.Context, cycleID string) ([]*models.VerificationRun, error) {
	var out []*models.VerificationRun
	for _, run := range r.runs {
		if run.CycleID == cycleID {
			out = append(out, run)
		}
	}
	return out, nil
}

func (r *memoryRunRepo) FindRecent(_ context.Context, page, limit int) ([]*models.VerificationRun, error) {
	return r.runs, nil
}

func (r *memoryRunRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.runs)), nil
}

func writeTestPackage(t *testing.T, root, name string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.Mkdir(dir, 0o755))

	files := map[string]string{
		"metadata.json": `{
			"cycle_id": "2025-10-28T14_30",
			"start_signature": "5ig000start",
			"verification_slot": 123456789,
			"verification_seed": "ABC123",
			"rules": {"min_eligible_holding_amount": 100, "min_trade_volume": 50}
		}`,
		"initial_balances.csv": "wallet,amount\nwalletA,100\nwalletB,250\n",
		"cycle_stats.csv":      "wallet,largest_buy,largest_buy_tx,total_volume,buys,sells\nwalletA,40,txA,60,60,0\nwalletB,80,txB,160,100,60\n",
		"final_balances.csv":   "wallet,amount\nwalletA,300\nwalletB,400\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func newTestService(t *testing.T) (*VerificationServiceImpl, *memoryRunRepo, string) {
	t.Helper()
	root := t.TempDir()
	repo := &memoryRunRepo{}
	return NewVerificationService(repo, root), repo, root
}

func TestVerifyPackageCompleted(t *testing.T) {
	svc, repo, root := newTestService(t)
	writeTestPackage(t, root, "2025-10-28T14_30")

	run, err := svc.VerifyPackage(context.Background(), "2025-10-28T14_30")
	require.NoError(t, err)

	require.Equal(t, models.RunStatusCompleted, run.Status)
	require.Equal(t, "2025-10-28T14_30", run.CycleID)
	require.Equal(t, "ABC123", run.Seed.VerificationSeed)
	require.NotNil(t, run.Report)
	require.Len(t, run.Report.Outcomes, 4)
	require.Len(t, repo.runs, 1)
}

func TestVerifyPackageDeterministicAcrossRuns(t *testing.T) {
	svc, _, root := newTestService(t)
	writeTestPackage(t, root, "2025-10-28T14_30")

	run1, err := svc.VerifyPackage(context.Background(), "2025-10-28T14_30")
	require.NoError(t, err)
	run2, err := svc.VerifyPackage(context.Background(), "2025-10-28T14_30")
	require.NoError(t, err)

	require.Equal(t, run1.Report, run2.Report)
}

func TestVerifyPackagePartial(t *testing.T) {
	svc, _, root := newTestService(t)
	writeTestPackage(t, root, "pkg")
	// No trades this cycle: trading categories cannot resolve.
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "pkg", "cycle_stats.csv"),
		[]byte("wallet,largest_buy,largest_buy_tx,total_volume,buys,sells\n"), 0o644))

	run, err := svc.VerifyPackage(context.Background(), "pkg")
	require.NoError(t, err)
	require.Equal(t, models.RunStatusPartial, run.Status)
	require.NotNil(t, run.Report)
}

func TestVerifyPackageMissingPackage(t *testing.T) {
	svc, repo, _ := newTestService(t)

	run, err := svc.VerifyPackage(context.Background(), "no-such-package")
	require.Error(t, err)
	require.NotNil(t, run)
	require.Equal(t, models.RunStatusFailed, run.Status)
	require.NotEmpty(t, run.ErrorMessage)
	// Failed runs are recorded too.
	require.Len(t, repo.runs, 1)
}

func TestVerifyPackageRejectsPathTraversal(t *testing.T) {
	svc, repo, _ := newTestService(t)

	for _, name := range []string{"", "../etc", "a/b", ".."} {
		_, err := svc.VerifyPackage(context.Background(), name)
		require.Error(t, err, "package name %q", name)
	}
	require.Empty(t, repo.runs)
}

func TestVerifyPackagePersistFailure(t *testing.T) {
	root := t.TempDir()
	repo := &memoryRunRepo{createErr: errors.New("mongo down")}
	svc := NewVerificationService(repo, root)
	writeTestPackage(t, root, "pkg")

	run, err := svc.VerifyPackage(context.Background(), "pkg")
	require.ErrorContains(t, err, "failed to persist verification run")
	require.NotNil(t, run)
	require.Equal(t, models.RunStatusCompleted, run.Status)
}

func TestGetRunByID(t *testing.T) {
	svc, _, root := newTestService(t)
	writeTestPackage(t, root, "pkg")

	created, err := svc.VerifyPackage(context.Background(), "pkg")
	require.NoError(t, err)

	got, err := svc.GetRunByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = svc.GetRunByID(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, mongo.ErrNoDocuments)
}
