package checklist

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/iwneis/neishelper/core"
	"github.com/iwneis/neishelper/core/catalog"
)

// DefaultUserID addresses the shared slot used when a client sends no user id.
const DefaultUserID = "default"

var (
	ErrNotFound = errors.New("checklist not found")

	nowFunc = time.Now // mockable
)

type (
	// Record is one stored row: the user's opaque blob and when the server last wrote it.
	Record struct {
		UserID    string
		Data      string
		UpdatedAt time.Time // UTC
	}

	Repository interface {
		// GetChecklist returns ErrNotFound when nothing is stored for userID.
		GetChecklist(ctx context.Context, userID string) (Record, error)
		// SaveChecklist inserts or replaces the record of rec.UserID.
		SaveChecklist(ctx context.Context, rec Record) error
	}

	// Service is the server side of the gateway: a last-write-wins blob per user id.
	// It satisfies Gateway, so a Store can run in-process against it.
	Service struct {
		repo          Repository
		defaultUserID string
	}
)

var _ Gateway = (*Service)(nil)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{
		repo:          repo,
		defaultUserID: core.DefaultString(conf.Checklist.DefaultUserID, DefaultUserID),
	}
}

// UserID cleans a client supplied user id, falling back to the default slot.
func (svc *Service) UserID(raw string) string {
	return core.DefaultString(raw, svc.defaultUserID)
}

func (svc *Service) Record(ctx context.Context, userID string) (Record, error) {
	return svc.repo.GetChecklist(ctx, svc.UserID(userID))
}

func (svc *Service) Get(ctx context.Context, userID string) (string, bool, error) {
	rec, err := svc.Record(ctx, userID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "getting checklist")
	}
	if rec.Data == "" {
		return "", false, nil
	}
	return rec.Data, true, nil
}

func (svc *Service) Put(ctx context.Context, userID, blob string) error {
	rec := Record{
		UserID:    svc.UserID(userID),
		Data:      blob,
		UpdatedAt: nowFunc().UTC(),
	}
	if err := svc.repo.SaveChecklist(ctx, rec); err != nil {
		return errors.Wrap(err, "saving checklist")
	}
	return nil
}

// Progress decodes the stored state the way a Store would (absent or corrupt is empty)
// and reports it against `c`.
func (svc *Service) Progress(ctx context.Context, c *catalog.Catalog, userID string) (Report, error) {
	blob, found, err := svc.Get(ctx, userID)
	if err != nil {
		return Report{}, err
	}
	state := State{}
	if found {
		if decoded, err := Decode(blob); err == nil {
			state = decoded
		}
	}
	return NewReport(c, state), nil
}
