package attachment

import (
	"context"
	"time"

	"backend/internal/apperrors"

	"go.uber.org/zap"
)

// URLSigner is the slice of the blob store this service needs.
type URLSigner interface {
	PresignedURL(ctx context.Context, objectName string, ttl time.Duration, downloadName string) (string, error)
}

type Service interface {
	GetByIDs(ctx context.Context, ids []uint64) ([]*Attachment, error)
	// DownloadURL returns a short-lived signed link for one attachment,
	// forcing a download under the attachment's display name.
	DownloadURL(ctx context.Context, id uint64, ttl time.Duration) (string, error)
	UpdateDescription(ctx context.Context, id uint64, description string) error
}

type service struct {
	repo   Repository
	signer URLSigner
	logger *zap.Logger
}

func NewService(repo Repository, signer URLSigner, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		signer: signer,
		logger: logger,
	}
}

func (s *service) GetByIDs(ctx context.Context, ids []uint64) ([]*Attachment, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *service) DownloadURL(ctx context.Context, id uint64, ttl time.Duration) (string, error) {
	atts, err := s.repo.GetByIDs(ctx, []uint64{id})
	if err != nil {
		return "", err
	}
	if len(atts) == 0 {
		return "", apperrors.ErrAttachmentNotFound
	}

	att := atts[0]
	url, err := s.signer.PresignedURL(ctx, att.StoragePath, ttl, att.DisplayName())
	if err != nil {
		s.logger.Error("Failed to presign attachment URL",
			zap.Uint64("attachment_id", id),
			zap.String("storage_path", att.StoragePath),
			zap.Error(err),
		)
		return "", err
	}
	return url, nil
}

func (s *service) UpdateDescription(ctx context.Context, id uint64, description string) error {
	return s.repo.UpdateDescription(ctx, id, description)
}
