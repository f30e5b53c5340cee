package user

import (
	"context"

	"backend/internal/apperrors"

	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByIDs resolves a batch of user ids in one query; empty input
	// returns immediately without a store round-trip.
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, &apperrors.RepositoryError{Op: "get user", Err: err}
	}
	return &u, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]*User, error) {
	if len(ids) == 0 {
		return []*User{}, nil
	}
	var users []*User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, &apperrors.RepositoryError{Op: "get users", Err: err}
	}
	return users, nil
}
