package attachment

import (
	"context"

	"backend/internal/apperrors"

	"gorm.io/gorm"
)

type Repository interface {
	// InsertMany writes all rows in one batch insert; ids are assigned in
	// input order. The batch succeeds or fails as a whole.
	InsertMany(ctx context.Context, atts []*Attachment) error
	GetByIDs(ctx context.Context, ids []uint64) ([]*Attachment, error)
	UpdateDescription(ctx context.Context, id uint64, description string) error
	DeleteByIDs(ctx context.Context, ids []uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertMany(ctx context.Context, atts []*Attachment) error {
	if len(atts) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&atts).Error; err != nil {
		return &apperrors.RepositoryError{Op: "insert attachments", Err: err}
	}
	return nil
}

// GetByIDs resolves a batch of ids to rows. Empty input returns immediately
// without touching the store; row order is unspecified.
func (r *repository) GetByIDs(ctx context.Context, ids []uint64) ([]*Attachment, error) {
	if len(ids) == 0 {
		return []*Attachment{}, nil
	}
	var atts []*Attachment
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&atts).Error
	if err != nil {
		return nil, &apperrors.RepositoryError{Op: "get attachments", Err: err}
	}
	return atts, nil
}

func (r *repository) UpdateDescription(ctx context.Context, id uint64, description string) error {
	res := r.db.WithContext(ctx).
		Model(&Attachment{}).
		Where("id = ?", id).
		Update("description", description)
	if res.Error != nil {
		return &apperrors.RepositoryError{Op: "update description", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAttachmentNotFound
	}
	return nil
}

// DeleteByIDs is idempotent: already-deleted ids are not an error.
func (r *repository) DeleteByIDs(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&Attachment{}).Error
	if err != nil {
		return &apperrors.RepositoryError{Op: "delete attachments", Err: err}
	}
	return nil
}
