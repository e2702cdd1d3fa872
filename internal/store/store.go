// Package store is the gorm-backed persistence layer. Services depend on
// the narrow interfaces they declare; *Store satisfies all of them.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobboard/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// HasPlanFeature answers whether the organization's billing plan grants a
// named entitlement. Unknown organizations hold nothing.
func (s *Store) HasPlanFeature(ctx context.Context, orgID, feature string) (bool, error) {
	if orgID == "" {
		return false, nil
	}

	var org models.Organization
	err := s.db.WithContext(ctx).First(&org, "id = ?", orgID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	for _, f := range org.PlanFeatures {
		if f == feature {
			return true, nil
		}
	}
	return false, nil
}
