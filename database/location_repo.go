package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blogicum/backend/models"
)

type LocationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) *LocationRepo {
	return &LocationRepo{db}
}

// Add inserts a new location into the database
func (r *LocationRepo) Add(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// FindByID returns a location by its ID
func (r *LocationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// FindAll returns all locations ordered by name
func (r *LocationRepo) FindAll(ctx context.Context) ([]*models.Location, error) {
	var locations []*models.Location
	err := r.db.WithContext(ctx).Order("name").Find(&locations).Error
	return locations, err
}

// Delete removes a location by id; referencing posts keep a null location.
func (r *LocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Location{}, id).Error
}
