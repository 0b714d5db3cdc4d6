package storage

import (
	"context"
	"errors"

	"github.com/prospectio/leadscout/models"
)

// Sentinel errors returned by repositories.
var (
	// ErrNotFound means no lead matched the given ID.
	ErrNotFound = errors.New("lead not found")

	// ErrDuplicate means a lead with the same (username, platform) pair
	// already exists.
	ErrDuplicate = errors.New("lead already exists")
)

// Repository is the persistence boundary for leads.
type Repository interface {
	Init(ctx context.Context) error

	Save(ctx context.Context, lead models.Lead) (*models.Lead, error)
	Get(ctx context.Context, id int64) (*models.Lead, error)
	Update(ctx context.Context, id int64, lead models.Lead) (*models.Lead, error)
	Delete(ctx context.Context, id int64) error

	Search(ctx context.Context, q models.SearchQuery) ([]models.Lead, int64, error)
	Count(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*models.StatsResponse, error)
	Tags(ctx context.Context) ([]string, error)

	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	BulkTag(ctx context.Context, ids []int64, tags []string) (int64, error)

	Close() error
}
