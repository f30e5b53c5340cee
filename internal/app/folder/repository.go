package folder

import (
	"context"
	"strings"

	"backend/internal/app/attachment"
	"backend/internal/apperrors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, f *Folder) error
	Update(ctx context.Context, f *Folder) error
	// Delete fails with a RepositoryError when the store reports a
	// foreign-key violation, i.e. the folder still has files attached.
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*Folder, error)
	// ListFolders returns global folders (nil project) plus, when a
	// filter is given, folders of that project.
	ListFolders(ctx context.Context, projectID *uint64) ([]*Folder, error)
	ListFiles(ctx context.Context, folderID uint64) ([]*attachment.Attachment, error)
	Attach(ctx context.Context, ff *FolderFile) error
	Detach(ctx context.Context, folderID, attachmentID uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Folder) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return &apperrors.RepositoryError{Op: "create folder", Err: err}
	}
	return nil
}

func (r *repository) Update(ctx context.Context, f *Folder) error {
	res := r.db.WithContext(ctx).
		Model(&Folder{}).
		Where("id = ?", f.ID).
		Updates(map[string]interface{}{
			"name":        f.Name,
			"description": f.Description,
		})
	if res.Error != nil {
		return &apperrors.RepositoryError{Op: "update folder", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrFolderNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Delete(&Folder{}, id).Error
	if err != nil {
		// SQLSTATE 23503: the folder still has files attached; surfaced,
		// not swallowed.
		if strings.Contains(err.Error(), "23503") {
			return &apperrors.RepositoryError{Op: "delete folder: folder still contains files", Err: err}
		}
		return &apperrors.RepositoryError{Op: "delete folder", Err: err}
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint64) (*Folder, error) {
	var f Folder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrFolderNotFound
		}
		return nil, &apperrors.RepositoryError{Op: "get folder", Err: err}
	}
	return &f, nil
}

func (r *repository) ListFolders(ctx context.Context, projectID *uint64) ([]*Folder, error) {
	var folders []*Folder
	q := r.db.WithContext(ctx).Order("name ASC")
	if projectID != nil {
		q = q.Where("project_id IS NULL OR project_id = ?", *projectID)
	}
	if err := q.Find(&folders).Error; err != nil {
		return nil, &apperrors.RepositoryError{Op: "list folders", Err: err}
	}
	return folders, nil
}

func (r *repository) ListFiles(ctx context.Context, folderID uint64) ([]*attachment.Attachment, error) {
	var atts []*attachment.Attachment
	err := r.db.WithContext(ctx).
		Table("attachments").
		Joins("JOIN document_folder_files ff ON ff.attachment_id = attachments.id").
		Where("ff.folder_id = ?", folderID).
		Order("attachments.created_at ASC").
		Find(&atts).Error
	if err != nil {
		return nil, &apperrors.RepositoryError{Op: "list folder files", Err: err}
	}
	return atts, nil
}

func (r *repository) Attach(ctx context.Context, ff *FolderFile) error {
	if err := r.db.WithContext(ctx).Create(ff).Error; err != nil {
		return &apperrors.RepositoryError{Op: "attach file to folder", Err: err}
	}
	return nil
}

func (r *repository) Detach(ctx context.Context, folderID, attachmentID uint64) error {
	err := r.db.WithContext(ctx).
		Where("folder_id = ? AND attachment_id = ?", folderID, attachmentID).
		Delete(&FolderFile{}).Error
	if err != nil {
		return &apperrors.RepositoryError{Op: "detach file from folder", Err: err}
	}
	return nil
}
