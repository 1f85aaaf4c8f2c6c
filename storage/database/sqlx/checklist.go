package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/iwneis/neishelper/core/checklist"
)

type (
	checklistRepository struct {
		db *sqlx.DB
	}

	checklistRow struct {
		UserID    string      `db:"user_id"`
		Data      null.String `db:"data"`
		UpdatedAt time.Time   `db:"updated_at"`
	}
)

var _ checklist.Repository = (*checklistRepository)(nil) // interface compliance check

const upsertChecklist = `
	INSERT INTO checklists (user_id, data, updated_at)
	VALUES (:user_id, :data, :updated_at)
	ON CONFLICT (user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

func NewChecklistRepository(db *sqlx.DB) *checklistRepository {
	return &checklistRepository{db: db}
}

func (repo checklistRepository) toRow(rec checklist.Record) checklistRow {
	return checklistRow{
		UserID:    rec.UserID,
		Data:      null.NewString(rec.Data, rec.Data != ""),
		UpdatedAt: rec.UpdatedAt.UTC(),
	}
}

func (repo checklistRepository) fromRow(row checklistRow) checklist.Record {
	return checklist.Record{
		UserID:    row.UserID,
		Data:      row.Data.String,
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func (repo checklistRepository) GetChecklist(ctx context.Context, userID string) (checklist.Record, error) {
	var row checklistRow
	q := repo.db.Rebind("SELECT user_id, data, updated_at FROM checklists WHERE user_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return checklist.Record{}, checklist.ErrNotFound
		}
		return checklist.Record{}, errors.Wrap(err, "selecting checklist")
	}
	return repo.fromRow(row), nil
}

func (repo checklistRepository) SaveChecklist(ctx context.Context, rec checklist.Record) error {
	if _, err := repo.db.NamedExecContext(ctx, upsertChecklist, repo.toRow(rec)); err != nil {
		return errors.Wrap(err, "upserting checklist")
	}
	return nil
}
