package inmemdb

import (
	"context"

	"github.com/iwneis/neishelper/core/checklist"
)

type checklistRepository struct {
	db *checklistTable
}

var _ checklist.Repository = (*checklistRepository)(nil) // interface compliance check

func NewChecklistRepository(db *DB) *checklistRepository {
	return &checklistRepository{db: db.checklist}
}

func (repo *checklistRepository) GetChecklist(_ context.Context, userID string) (checklist.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rec, ok := repo.db.table[userID]
	if !ok {
		return checklist.Record{}, checklist.ErrNotFound
	}
	return rec, nil
}

func (repo *checklistRepository) SaveChecklist(_ context.Context, rec checklist.Record) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec.UpdatedAt = rec.UpdatedAt.UTC()
	repo.db.table[rec.UserID] = rec
	return nil
}
