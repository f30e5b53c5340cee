package folder

import (
	"context"

	"backend/internal/app/user"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SizeProber is the slice of the blob store the aggregator needs for
// derived fields.
type SizeProber interface {
	ProbeContentLength(ctx context.Context, objectName string) *int64
	PublicURL(objectName string) string
}

type Service interface {
	CreateFolder(ctx context.Context, req *CreateFolderRequest, actor user.Current) (*Folder, error)
	UpdateFolder(ctx context.Context, id uint64, req *UpdateFolderRequest) (*Folder, error)
	DeleteFolder(ctx context.Context, id uint64) error
	ListFolders(ctx context.Context, projectID *uint64) ([]*Folder, error)
	// ListByFolder returns the folder's documents with author names and
	// byte sizes resolved. Size probing is best-effort per file and never
	// fails the listing.
	ListByFolder(ctx context.Context, folderID uint64) ([]Document, error)
	Attach(ctx context.Context, folderID, attachmentID uint64, actor user.Current) error
	Detach(ctx context.Context, folderID, attachmentID uint64) error
}

type service struct {
	repo   Repository
	users  user.Service
	prober SizeProber
	logger *zap.Logger
}

func NewService(repo Repository, users user.Service, prober SizeProber, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		prober: prober,
		logger: logger,
	}
}

func (s *service) CreateFolder(ctx context.Context, req *CreateFolderRequest, actor user.Current) (*Folder, error) {
	f := &Folder{
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		CreatedBy:   actor.ID,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	s.logger.Info("Folder created",
		zap.Uint64("folder_id", f.ID),
		zap.String("name", f.Name),
	)
	return f, nil
}

func (s *service) UpdateFolder(ctx context.Context, id uint64, req *UpdateFolderRequest) (*Folder, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Description != nil {
		f.Description = req.Description
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) DeleteFolder(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListFolders(ctx context.Context, projectID *uint64) ([]*Folder, error) {
	return s.repo.ListFolders(ctx, projectID)
}

func (s *service) ListByFolder(ctx context.Context, folderID uint64) ([]Document, error) {
	atts, err := s.repo.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(atts))
	for _, att := range atts {
		authorIDs = append(authorIDs, att.CreatedBy)
	}
	names, err := s.users.DisplayNames(ctx, authorIDs)
	if err != nil {
		// Author names are derived data; the listing itself is not
		// blocked by a lookup failure.
		s.logger.Warn("Failed to resolve document authors", zap.Error(err))
		names = map[string]string{}
	}

	docs := make([]Document, len(atts))
	g, gctx := errgroup.WithContext(ctx)
	for i, att := range atts {
		docs[i] = Document{
			Attachment: *att,
			AuthorName: names[att.CreatedBy],
			URL:        s.prober.PublicURL(att.StoragePath),
		}
		path := att.StoragePath
		idx := i
		g.Go(func() error {
			docs[idx].FileSize = s.prober.ProbeContentLength(gctx, path)
			return nil
		})
	}
	// probes never return an error, Wait only joins the goroutines
	_ = g.Wait()

	return docs, nil
}

func (s *service) Attach(ctx context.Context, folderID, attachmentID uint64, actor user.Current) error {
	if _, err := s.repo.GetByID(ctx, folderID); err != nil {
		return err
	}
	return s.repo.Attach(ctx, &FolderFile{
		FolderID:     folderID,
		AttachmentID: attachmentID,
		CreatedBy:    actor.ID,
	})
}

func (s *service) Detach(ctx context.Context, folderID, attachmentID uint64) error {
	return s.repo.Detach(ctx, folderID, attachmentID)
}
