package folder

import (
	"time"

	"backend/internal/app/attachment"
)

// Folder is a virtual grouping of document-category attachments. A nil
// ProjectID marks a global folder shared across projects.
type Folder struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	ProjectID   *uint64   `json:"project_id,omitempty" gorm:"index"`
	CreatedBy   string    `json:"created_by" gorm:"type:varchar(36);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Folder) TableName() string {
	return "document_folders"
}

type FolderFile struct {
	FolderID     uint64    `json:"folder_id" gorm:"primaryKey;autoIncrement:false"`
	AttachmentID uint64    `json:"attachment_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedBy    string    `json:"created_by" gorm:"type:varchar(36);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (FolderFile) TableName() string {
	return "document_folder_files"
}

// Document is a folder listing entry with derived fields: the author's
// display name resolved by a side query and the byte size probed from the
// blob store (nil when the probe fails).
type Document struct {
	attachment.Attachment
	AuthorName string `json:"author_name"`
	FileSize   *int64 `json:"file_size"`
	URL        string `json:"url"`
}

type CreateFolderRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ProjectID   *uint64 `json:"project_id"`
}

type UpdateFolderRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type AttachFileRequest struct {
	AttachmentID uint64 `json:"attachment_id" binding:"required"`
}

type FolderListResponse struct {
	Folders []*Folder `json:"folders"`
}

type DocumentListResponse struct {
	Documents []Document `json:"documents"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
