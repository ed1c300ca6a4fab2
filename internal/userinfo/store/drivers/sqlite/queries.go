package sqlite

import (
	"context"
	"database/sql"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

type profileRow struct {
	Sub       string
	Claims    string
	CreatedAt int64
	UpdatedAt int64
}

const getProfile = `
SELECT sub, claims, created_at, updated_at
FROM profiles
WHERE sub = ?`

func (q *queries) getProfile(ctx context.Context, sub string) (profileRow, error) {
	var row profileRow
	err := q.db.QueryRowContext(ctx, getProfile, sub).
		Scan(&row.Sub, &row.Claims, &row.CreatedAt, &row.UpdatedAt)
	return row, err
}

const createProfile = `
INSERT INTO profiles (sub, claims, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (sub) DO NOTHING`

func (q *queries) createProfile(ctx context.Context, row profileRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, createProfile, row.Sub, row.Claims, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const upsertProfile = `
INSERT INTO profiles (sub, claims, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (sub) DO UPDATE SET
    claims     = excluded.claims,
    updated_at = excluded.updated_at`

func (q *queries) upsertProfile(ctx context.Context, row profileRow) error {
	_, err := q.db.ExecContext(ctx, upsertProfile, row.Sub, row.Claims, row.CreatedAt, row.UpdatedAt)
	return err
}

const deleteProfile = `DELETE FROM profiles WHERE sub = ?`

func (q *queries) deleteProfile(ctx context.Context, sub string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteProfile, sub)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countProfiles = `SELECT COUNT(*) FROM profiles`

func (q *queries) countProfiles(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countProfiles).Scan(&n)
	return n, err
}
