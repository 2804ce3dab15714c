package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/profile-manager/internal/domain/model"
	"github.com/ericfisherdev/profile-manager/internal/domain/port/driven"
)

func testProfile(name string, createdAt time.Time) model.Profile {
	return model.Profile{
		Name:      name,
		Kind:      model.KindAWS,
		AccessKey: "AKIA" + name,
		SecretKey: "secret-" + name,
		Region:    "us-east-1",
		CreatedAt: createdAt,
	}
}

func TestProfileRepo_CreateAndGetByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	createdAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	created, err := repo.Create(ctx, testProfile("work", createdAt))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetByName(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, "work", got.Name)
	assert.Equal(t, model.KindAWS, got.Kind)
	assert.Equal(t, "AKIAwork", got.AccessKey)
	assert.Equal(t, "secret-work", got.SecretKey)
	assert.Equal(t, "us-east-1", got.Region)
	assert.True(t, got.CreatedAt.Equal(createdAt))
	assert.False(t, got.IsActive)
	assert.False(t, got.EverActivated())
}

func TestProfileRepo_CreateDuplicateLeavesStoreUnchanged(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	first := testProfile("work", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC))
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	dupe := testProfile("work", time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC))
	dupe.Region = "eu-west-1"
	_, err = repo.Create(ctx, dupe)
	require.ErrorIs(t, err, driven.ErrProfileExists)

	got, err := repo.GetByName(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", got.Region, "failed create must not modify the existing profile")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProfileRepo_GetByNameMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)

	_, err := repo.GetByName(context.Background(), "nope")
	assert.ErrorIs(t, err, driven.ErrProfileNotFound)
}

func TestProfileRepo_ListAllCreationOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"charlie", "alpha", "bravo"} {
		_, err := repo.Create(ctx, testProfile(name, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "charlie", all[0].Name, "list follows creation order, not name order")
	assert.Equal(t, "alpha", all[1].Name)
	assert.Equal(t, "bravo", all[2].Name)
}

func TestProfileRepo_ListAllEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProfileRepo_SetActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	createdAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	_, err := repo.Create(ctx, testProfile("work", createdAt))
	require.NoError(t, err)

	activatedAt := createdAt.Add(time.Hour)
	require.NoError(t, repo.SetActive(ctx, "work", activatedAt))

	got, err := repo.GetByName(ctx, "work")
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.True(t, got.LastActivatedAt.Equal(activatedAt))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "work", active.Name)
}

func TestProfileRepo_SetActiveMovesFlag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, testProfile("work", base))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testProfile("personal", base.Add(time.Minute)))
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(ctx, "work", base.Add(time.Hour)))
	require.NoError(t, repo.SetActive(ctx, "personal", base.Add(2*time.Hour)))

	work, err := repo.GetByName(ctx, "work")
	require.NoError(t, err)
	assert.False(t, work.IsActive)
	assert.True(t, work.EverActivated(), "losing the flag keeps the activation history")

	personal, err := repo.GetByName(ctx, "personal")
	require.NoError(t, err)
	assert.True(t, personal.IsActive)

	assertAtMostOneActive(t, db)
}

func TestProfileRepo_SetActiveMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, testProfile("work", base))
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(ctx, "work", base.Add(time.Hour)))

	err = repo.SetActive(ctx, "nope", base.Add(2*time.Hour))
	require.ErrorIs(t, err, driven.ErrProfileNotFound)

	// The failed activation must roll back, leaving the previous holder active.
	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "work", active.Name)
}

func TestProfileRepo_ClearActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, testProfile("work", base))
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(ctx, "work", base.Add(time.Hour)))

	cleared, err := repo.ClearActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, cleared)
	assert.Equal(t, "work", cleared.Name)
	assert.False(t, cleared.IsActive)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestProfileRepo_ClearActiveNoneActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)

	cleared, err := repo.ClearActive(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cleared)
}

func TestProfileRepo_DeleteActiveProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, testProfile("work", base))
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(ctx, "work", base.Add(time.Hour)))

	require.NoError(t, repo.Delete(ctx, "work"))

	_, err = repo.GetByName(ctx, "work")
	assert.ErrorIs(t, err, driven.ErrProfileNotFound)

	// No replacement is auto-activated.
	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestProfileRepo_DeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepo(db)

	err := repo.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, driven.ErrProfileNotFound)
}

// assertAtMostOneActive checks the single-active invariant directly in SQL.
func assertAtMostOneActive(t *testing.T, db *DB) {
	t.Helper()

	var count int
	err := db.Reader.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM profiles WHERE is_active = 1`).Scan(&count)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, 1)
}
