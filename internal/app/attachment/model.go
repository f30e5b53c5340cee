package attachment

import (
	"path"
	"strings"
	"time"
)

// Attachment is the metadata row for one stored file. StoragePath is the
// key into the blob store and is immutable after creation, format
// <category>/<parentID>/<epochMillis>_<sanitizedFilename>.
type Attachment struct {
	ID           uint64    `json:"id" gorm:"primaryKey"`
	StoragePath  string    `json:"storage_path" gorm:"type:varchar(500);uniqueIndex;not null"`
	MimeType     string    `json:"mime_type" gorm:"type:varchar(100);not null"`
	OriginalName *string   `json:"original_name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	CreatedBy    string    `json:"created_by" gorm:"type:varchar(36);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// DisplayName returns the user-visible filename, falling back to the
// storage path's base name with its epoch prefix stripped.
func (a *Attachment) DisplayName() string {
	if a.OriginalName != nil && *a.OriginalName != "" {
		return *a.OriginalName
	}
	base := path.Base(a.StoragePath)
	if idx := strings.Index(base, "_"); idx > 0 {
		if isDigits(base[:idx]) {
			return base[idx+1:]
		}
	}
	return base
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

type AttachmentListResponse struct {
	Attachments []*Attachment `json:"attachments"`
}

type SignedURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

type UpdateDescriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
