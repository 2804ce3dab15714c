package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/profile-manager/internal/domain/model"
	"github.com/ericfisherdev/profile-manager/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProfileStore = (*ProfileRepo)(nil)

// ProfileRepo is the SQLite implementation of the ProfileStore port interface.
type ProfileRepo struct {
	db *DB
}

// NewProfileRepo creates a new ProfileRepo backed by the given DB.
func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileColumns = `id, name, kind, access_key, secret_key, region, created_at, last_activated_at, is_active`

// Create inserts a new profile and returns it with its assigned ID.
// The existence check and the insert run in one transaction on the single
// writer connection, so a duplicate name can never slip in between them.
func (r *ProfileRepo) Create(ctx context.Context, p model.Profile) (model.Profile, error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return model.Profile{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE name = ?)`, p.Name,
	).Scan(&exists); err != nil {
		return model.Profile{}, fmt.Errorf("check profile %q: %w", p.Name, err)
	}
	if exists {
		return model.Profile{}, fmt.Errorf("create profile %q: %w", p.Name, driven.ErrProfileExists)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO profiles (name, kind, access_key, secret_key, region, created_at, last_activated_at, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, 0)`,
		p.Name, p.Kind, p.AccessKey, p.SecretKey, p.Region, formatTime(p.CreatedAt),
	)
	if err != nil {
		return model.Profile{}, fmt.Errorf("insert profile %q: %w", p.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Profile{}, fmt.Errorf("profile %q insert id: %w", p.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Profile{}, fmt.Errorf("commit create profile %q: %w", p.Name, err)
	}

	p.ID = id
	p.LastActivatedAt = time.Time{}
	p.IsActive = false
	return p, nil
}

// GetByName returns the named profile, or driven.ErrProfileNotFound.
func (r *ProfileRepo) GetByName(ctx context.Context, name string) (*model.Profile, error) {
	row := r.db.Reader.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %q: %w", name, driven.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %q: %w", name, err)
	}
	return p, nil
}

// ListAll returns every profile in creation order.
func (r *ProfileRepo) ListAll(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.db.Reader.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}

// GetActive returns the currently active profile, or nil when none is.
func (r *ProfileRepo) GetActive(ctx context.Context) (*model.Profile, error) {
	row := r.db.Reader.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE is_active = 1`)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active profile: %w", err)
	}
	return p, nil
}

// SetActive atomically moves the active flag to the named profile and stamps
// its last_activated_at. The previous holder, if any, is cleared in the same
// transaction so at most one row ever carries the flag.
func (r *ProfileRepo) SetActive(ctx context.Context, name string, at time.Time) error {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET is_active = 0 WHERE is_active = 1`); err != nil {
		return fmt.Errorf("clear active profile: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE profiles SET is_active = 1, last_activated_at = ? WHERE name = ?`,
		formatTime(at), name)
	if err != nil {
		return fmt.Errorf("activate profile %q: %w", name, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate profile %q rows affected: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("activate profile %q: %w", name, driven.ErrProfileNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate profile %q: %w", name, err)
	}
	return nil
}

// ClearActive clears the active flag and returns the profile that held it,
// or nil when no profile was active.
func (r *ProfileRepo) ClearActive(ctx context.Context) (*model.Profile, error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	row := tx.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE is_active = 1`)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET is_active = 0 WHERE id = ?`, p.ID); err != nil {
		return nil, fmt.Errorf("deactivate profile %q: %w", p.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit deactivate profile %q: %w", p.Name, err)
	}

	p.IsActive = false
	return p, nil
}

// Delete removes the named profile, or returns driven.ErrProfileNotFound.
// Removing the active profile leaves the store with no active profile.
func (r *ProfileRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.Writer.ExecContext(ctx,
		`DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile %q rows affected: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete profile %q: %w", name, driven.ErrProfileNotFound)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		p             model.Profile
		createdAt     string
		lastActivated sql.NullString
		isActive      int
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Kind, &p.AccessKey, &p.SecretKey, &p.Region, &createdAt, &lastActivated, &isActive); err != nil {
		return nil, err
	}

	var err error
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if lastActivated.Valid {
		p.LastActivatedAt, err = parseTime(lastActivated.String)
		if err != nil {
			return nil, fmt.Errorf("parse last_activated_at: %w", err)
		}
	}
	p.IsActive = isActive == 1

	return &p, nil
}

// formatTime stores timestamps in UTC with fixed-width nanoseconds so
// lexicographic order in SQL matches chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
