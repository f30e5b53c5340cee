package reconcile

import (
	"context"
	"fmt"
	"io"
	"time"

	"backend/internal/app/attachment"
	"backend/internal/app/link"
	"backend/internal/app/user"
	"backend/internal/apperrors"
	"backend/internal/utils"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BlobStore is the slice of the storage provider the engine needs.
type BlobStore interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string, upsert bool) error
	Remove(ctx context.Context, objectNames []string) error
	PublicURL(objectName string) string
}

// Result carries the server-confirmed state of a successful submit. The
// caller folds it into the working set via MarkPersisted.
type Result struct {
	Created []RemoteFile
}

type Service interface {
	// Load resolves the persisted attachment set for one parent.
	Load(ctx context.Context, kind link.Kind, parentID uint64) ([]RemoteFile, error)
	// Submit converges storage, metadata and links to match the working
	// set. On error the working set is untouched and the caller may
	// resubmit as-is.
	Submit(ctx context.Context, kind link.Kind, parentID uint64, ws *WorkingSet, actor user.Current) (*Result, error)
	// Purge removes every attachment of a parent, used on parent deletion.
	Purge(ctx context.Context, kind link.Kind, parentID uint64) error
}

type service struct {
	attachments attachment.Repository
	linker      link.Linker
	store       BlobStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(attachments attachment.Repository, linker link.Linker, store BlobStore, logger *zap.Logger) Service {
	return &service{
		attachments: attachments,
		linker:      linker,
		store:       store,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *service) Load(ctx context.Context, kind link.Kind, parentID uint64) ([]RemoteFile, error) {
	links, err := s.linker.ListByParentIDs(ctx, kind, []uint64{parentID})
	if err != nil {
		return nil, err
	}

	rows := links[parentID]
	ids := make([]uint64, 0, len(rows))
	typeByID := make(map[uint64]*uint64, len(rows))
	for _, row := range rows {
		ids = append(ids, row.AttachmentID)
		typeByID[row.AttachmentID] = row.TypeID
	}

	atts, err := s.attachments.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	remote := make([]RemoteFile, 0, len(atts))
	for _, att := range atts {
		remote = append(remote, RemoteFile{Attachment: *att, TypeID: typeByID[att.ID]})
	}
	return remote, nil
}

func (s *service) Submit(ctx context.Context, kind link.Kind, parentID uint64, ws *WorkingSet, actor user.Current) (*Result, error) {
	// Fail fast before any network call so a rejected submit mutates
	// nothing.
	if err := validate(kind, ws); err != nil {
		return nil, err
	}

	created, err := s.persistNew(ctx, kind, parentID, ws, actor)
	if err != nil {
		return nil, err
	}

	var failures error

	if removalErr := s.applyRemovals(ctx, kind, parentID, ws.RemovedIDs); removalErr != nil {
		failures = multierr.Append(failures, removalErr)
	}

	for id, typeID := range ws.ChangedTypes {
		if ws.isRemoved(id) {
			continue
		}
		if err := s.linker.UpdateType(ctx, kind, parentID, id, typeID); err != nil {
			failures = multierr.Append(failures, fmt.Errorf("type update for attachment %d: %w", id, err))
		}
	}

	if failures != nil {
		return nil, failures
	}

	s.logger.Info("Attachment set reconciled",
		zap.String("kind", kind.Name),
		zap.Uint64("parent_id", parentID),
		zap.Int("added", len(created)),
		zap.Int("removed", len(ws.RemovedIDs)),
		zap.Int("retyped", len(ws.ChangedTypes)),
	)

	return &Result{Created: created}, nil
}

func validate(kind link.Kind, ws *WorkingSet) error {
	if !kind.RequiresType {
		return nil
	}
	for _, nf := range ws.New {
		if nf.TypeID == nil {
			return &apperrors.ValidationError{
				Reason: fmt.Sprintf("file %q has no attachment type", nf.Name),
			}
		}
	}
	for _, rf := range ws.Remote {
		if ws.isRemoved(rf.Attachment.ID) {
			continue
		}
		if ws.effectiveType(rf) == nil {
			return &apperrors.ValidationError{
				Reason: fmt.Sprintf("attachment %q has no attachment type", rf.Attachment.DisplayName()),
			}
		}
	}
	return nil
}

// persistNew runs the upload -> metadata -> link sequence for queued
// files. Uploads fan out concurrently; blobs already stored when a later
// phase fails are left behind rather than rolled back.
func (s *service) persistNew(ctx context.Context, kind link.Kind, parentID uint64, ws *WorkingSet, actor user.Current) ([]RemoteFile, error) {
	if len(ws.New) == 0 {
		return nil, nil
	}

	paths := make([]string, len(ws.New))
	g, gctx := errgroup.WithContext(ctx)
	for i := range ws.New {
		nf := ws.New[i]
		paths[i] = s.objectName(kind, parentID, nf.Name)
		objectName := paths[i]
		g.Go(func() error {
			return s.store.Upload(gctx, objectName, nf.Content, nf.Size, nf.MimeType, true)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]*attachment.Attachment, 0, len(ws.New))
	for i, nf := range ws.New {
		name := nf.Name
		rows = append(rows, &attachment.Attachment{
			StoragePath:  paths[i],
			MimeType:     nf.MimeType,
			OriginalName: &name,
			Description:  nf.Description,
			CreatedBy:    actor.ID,
		})
	}
	if err := s.attachments.InsertMany(ctx, rows); err != nil {
		return nil, err
	}

	linkRows := make([]link.Row, 0, len(rows))
	created := make([]RemoteFile, 0, len(rows))
	for i, row := range rows {
		linkRows = append(linkRows, link.Row{
			ParentID:     parentID,
			AttachmentID: row.ID,
			TypeID:       ws.New[i].TypeID,
		})
		created = append(created, RemoteFile{Attachment: *row, TypeID: ws.New[i].TypeID})
	}
	if err := s.linker.Link(ctx, kind, linkRows); err != nil {
		return nil, err
	}

	return created, nil
}

// applyRemovals deletes blobs, metadata rows and links for the removed
// ids. Removals are independent of each other: one failure does not stop
// the rest, but every failure is aggregated into the returned error.
func (s *service) applyRemovals(ctx context.Context, kind link.Kind, parentID uint64, removedIDs []uint64) error {
	if len(removedIDs) == 0 {
		return nil
	}

	atts, err := s.attachments.GetByIDs(ctx, removedIDs)
	if err != nil {
		return err
	}

	var failures error
	for _, att := range atts {
		if err := s.store.Remove(ctx, []string{att.StoragePath}); err != nil {
			failures = multierr.Append(failures, fmt.Errorf("remove blob %s: %w", att.StoragePath, err))
			continue
		}
		if err := s.attachments.DeleteByIDs(ctx, []uint64{att.ID}); err != nil {
			failures = multierr.Append(failures, fmt.Errorf("delete attachment %d: %w", att.ID, err))
			continue
		}
		if err := s.linker.Unlink(ctx, kind, parentID, att.ID); err != nil {
			failures = multierr.Append(failures, fmt.Errorf("unlink attachment %d: %w", att.ID, err))
		}
	}
	return failures
}

func (s *service) Purge(ctx context.Context, kind link.Kind, parentID uint64) error {
	remote, err := s.Load(ctx, kind, parentID)
	if err != nil {
		return err
	}

	ids := make([]uint64, 0, len(remote))
	for _, rf := range remote {
		ids = append(ids, rf.Attachment.ID)
	}

	if err := s.applyRemovals(ctx, kind, parentID, ids); err != nil {
		return err
	}
	return s.linker.UnlinkAll(ctx, kind, parentID)
}

func (s *service) objectName(kind link.Kind, parentID uint64, filename string) string {
	return fmt.Sprintf("%s/%d/%d_%s",
		kind.PathPrefix, parentID, s.now().UnixMilli(), utils.SanitizeFilename(filename))
}
