package link

import (
	"context"
	"time"

	"backend/internal/apperrors"

	"gorm.io/gorm"
)

// Row is one parent-to-attachment association. TypeID classifies the
// attachment's role for that parent and lives here, not on the attachment
// row, since a physical attachment only ever belongs to one parent.
type Row struct {
	ParentID     uint64    `json:"parent_id" gorm:"primaryKey;autoIncrement:false"`
	AttachmentID uint64    `json:"attachment_id" gorm:"primaryKey;autoIncrement:false"`
	TypeID       *uint64   `json:"type_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Linker interface {
	// Link bulk-inserts association rows for one parent. No-op on empty
	// input.
	Link(ctx context.Context, kind Kind, rows []Row) error
	Unlink(ctx context.Context, kind Kind, parentID, attachmentID uint64) error
	// UnlinkAll removes every association for a parent, used when the
	// parent entity itself is deleted.
	UnlinkAll(ctx context.Context, kind Kind, parentID uint64) error
	// ListByParentIDs resolves associations for a batch of parents in one
	// query. Empty input short-circuits to an empty map.
	ListByParentIDs(ctx context.Context, kind Kind, parentIDs []uint64) (map[uint64][]Row, error)
	UpdateType(ctx context.Context, kind Kind, parentID, attachmentID, typeID uint64) error
}

type linker struct {
	db *gorm.DB
}

func NewLinker(db *gorm.DB) Linker {
	return &linker{db: db}
}

func (l *linker) Link(ctx context.Context, kind Kind, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	err := l.db.WithContext(ctx).Table(kind.LinkTable).Create(&rows).Error
	if err != nil {
		return &apperrors.RepositoryError{Op: "link " + kind.Name, Err: err}
	}
	return nil
}

func (l *linker) Unlink(ctx context.Context, kind Kind, parentID, attachmentID uint64) error {
	err := l.db.WithContext(ctx).
		Table(kind.LinkTable).
		Where("parent_id = ? AND attachment_id = ?", parentID, attachmentID).
		Delete(&Row{}).Error
	if err != nil {
		return &apperrors.RepositoryError{Op: "unlink " + kind.Name, Err: err}
	}
	return nil
}

func (l *linker) UnlinkAll(ctx context.Context, kind Kind, parentID uint64) error {
	err := l.db.WithContext(ctx).
		Table(kind.LinkTable).
		Where("parent_id = ?", parentID).
		Delete(&Row{}).Error
	if err != nil {
		return &apperrors.RepositoryError{Op: "unlink all " + kind.Name, Err: err}
	}
	return nil
}

func (l *linker) ListByParentIDs(ctx context.Context, kind Kind, parentIDs []uint64) (map[uint64][]Row, error) {
	result := make(map[uint64][]Row)
	if len(parentIDs) == 0 {
		return result, nil
	}

	var rows []Row
	err := l.db.WithContext(ctx).
		Table(kind.LinkTable).
		Where("parent_id IN ?", parentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, &apperrors.RepositoryError{Op: "list links " + kind.Name, Err: err}
	}

	for _, row := range rows {
		result[row.ParentID] = append(result[row.ParentID], row)
	}
	return result, nil
}

func (l *linker) UpdateType(ctx context.Context, kind Kind, parentID, attachmentID, typeID uint64) error {
	res := l.db.WithContext(ctx).
		Table(kind.LinkTable).
		Where("parent_id = ? AND attachment_id = ?", parentID, attachmentID).
		Update("type_id", typeID)
	if res.Error != nil {
		return &apperrors.RepositoryError{Op: "update link type " + kind.Name, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAttachmentNotFound
	}
	return nil
}
