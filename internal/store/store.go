package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"complaint-intake-backend/internal/model"
)

// Store defines the database operations the dialogue core depends on.
type Store interface {
	// ListActiveResources returns the catalog with explicitly inactive rows
	// filtered out. An unset activation status counts as active.
	ListActiveResources(ctx context.Context) ([]model.Resource, error)

	// ListActiveResourcesByIDs is ListActiveResources narrowed to the given
	// ids. Missing or deactivated ids simply do not appear in the result.
	ListActiveResourcesByIDs(ctx context.Context, ids []int64) ([]model.Resource, error)

	// ListIncharge returns all lab-incharge rows in stable row order.
	ListIncharge(ctx context.Context) ([]model.LabIncharge, error)

	// CreateComplaint inserts the complaint and fills its generated id.
	CreateComplaint(ctx context.Context, c *model.Complaint) error

	// DB exposes the underlying connection for auxiliary handlers.
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB { return s.db }

func (s *gormStore) ListActiveResources(ctx context.Context) ([]model.Resource, error) {
	var rows []model.Resource
	if err := s.db.WithContext(ctx).Order("machid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return filterActive(rows), nil
}

func (s *gormStore) ListActiveResourcesByIDs(ctx context.Context, ids []int64) ([]model.Resource, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []model.Resource
	if err := s.db.WithContext(ctx).Where("machid IN ?", ids).Order("machid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list resources by ids: %w", err)
	}
	return filterActive(rows), nil
}

// filterActive applies the tri-state activation rule in one place; the textual
// status values vary too much across the legacy data to push into SQL.
func filterActive(rows []model.Resource) []model.Resource {
	active := rows[:0:0]
	for _, r := range rows {
		if r.IsActive() {
			active = append(active, r)
		}
	}
	return active
}

func (s *gormStore) ListIncharge(ctx context.Context) ([]model.LabIncharge, error) {
	var rows []model.LabIncharge
	if err := s.db.WithContext(ctx).Order("locationid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list lab incharge: %w", err)
	}
	return rows, nil
}

func (s *gormStore) CreateComplaint(ctx context.Context, c *model.Complaint) error {
	if c.Status == "" {
		c.Status = "Open"
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create complaint: %w", err)
	}
	return nil
}
