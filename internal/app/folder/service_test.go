package folder

import (
	"context"
	"errors"
	"testing"

	"backend/internal/app/attachment"
	"backend/internal/app/user"
	"backend/internal/apperrors"

	"go.uber.org/zap"
)

type fakeRepository struct {
	folders  map[uint64]*Folder
	files    map[uint64][]*attachment.Attachment
	attached []*FolderFile
	detached [][2]uint64
	nextID   uint64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		folders: make(map[uint64]*Folder),
		files:   make(map[uint64][]*attachment.Attachment),
	}
}

func (f *fakeRepository) Create(_ context.Context, folder *Folder) error {
	f.nextID++
	folder.ID = f.nextID
	copied := *folder
	f.folders[folder.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, folder *Folder) error {
	if _, ok := f.folders[folder.ID]; !ok {
		return apperrors.ErrFolderNotFound
	}
	copied := *folder
	f.folders[folder.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id uint64) error {
	if len(f.files[id]) > 0 {
		return &apperrors.RepositoryError{Op: "delete folder: folder still contains files", Err: errors.New("SQLSTATE 23503")}
	}
	delete(f.folders, id)
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uint64) (*Folder, error) {
	folder, ok := f.folders[id]
	if !ok {
		return nil, apperrors.ErrFolderNotFound
	}
	copied := *folder
	return &copied, nil
}

func (f *fakeRepository) ListFolders(_ context.Context, projectID *uint64) ([]*Folder, error) {
	out := make([]*Folder, 0, len(f.folders))
	for _, folder := range f.folders {
		if projectID != nil && folder.ProjectID != nil && *folder.ProjectID != *projectID {
			continue
		}
		out = append(out, folder)
	}
	return out, nil
}

func (f *fakeRepository) ListFiles(_ context.Context, folderID uint64) ([]*attachment.Attachment, error) {
	return f.files[folderID], nil
}

func (f *fakeRepository) Attach(_ context.Context, ff *FolderFile) error {
	f.attached = append(f.attached, ff)
	return nil
}

func (f *fakeRepository) Detach(_ context.Context, folderID, attachmentID uint64) error {
	f.detached = append(f.detached, [2]uint64{folderID, attachmentID})
	return nil
}

type fakeUsers struct {
	names map[string]string
	err   error
}

func (f *fakeUsers) DisplayNames(_ context.Context, ids []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string)
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type fakeProber struct {
	sizes map[string]int64
}

func (f *fakeProber) ProbeContentLength(_ context.Context, objectName string) *int64 {
	if size, ok := f.sizes[objectName]; ok {
		return &size
	}
	return nil
}

func (f *fakeProber) PublicURL(objectName string) string {
	return "http://blob.local/" + objectName
}

var _ user.Service = (*fakeUsers)(nil)

func TestListByFolderResolvesAuthorsAndSizes(t *testing.T) {
	repo := newFakeRepository()
	repo.files[1] = []*attachment.Attachment{
		{ID: 10, StoragePath: "docs/1/10_a.pdf", CreatedBy: "u1"},
		{ID: 11, StoragePath: "docs/1/11_b.pdf", CreatedBy: "u2"},
	}
	users := &fakeUsers{names: map[string]string{"u1": "Анна Смирнова", "u2": "Пётр Иванов"}}
	prober := &fakeProber{sizes: map[string]int64{"docs/1/10_a.pdf": 2048}}

	svc := NewService(repo, users, prober, zap.NewNop())
	docs, err := svc.ListByFolder(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByFolder() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}

	if docs[0].AuthorName != "Анна Смирнова" {
		t.Errorf("AuthorName = %q", docs[0].AuthorName)
	}
	if docs[0].FileSize == nil || *docs[0].FileSize != 2048 {
		t.Errorf("FileSize = %v, want 2048", docs[0].FileSize)
	}
	if docs[0].URL != "http://blob.local/docs/1/10_a.pdf" {
		t.Errorf("URL = %q", docs[0].URL)
	}

	// The probe for the second file failed; the document is still listed.
	if docs[1].FileSize != nil {
		t.Errorf("FileSize = %v, want nil for a failed probe", docs[1].FileSize)
	}
	if docs[1].AuthorName != "Пётр Иванов" {
		t.Errorf("AuthorName = %q", docs[1].AuthorName)
	}
}

func TestListByFolderAuthorLookupFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepository()
	repo.files[1] = []*attachment.Attachment{
		{ID: 10, StoragePath: "docs/1/10_a.pdf", CreatedBy: "u1"},
	}
	users := &fakeUsers{err: errors.New("redis down")}

	svc := NewService(repo, users, &fakeProber{}, zap.NewNop())
	docs, err := svc.ListByFolder(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByFolder() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	if docs[0].AuthorName != "" {
		t.Errorf("AuthorName = %q, want empty on lookup failure", docs[0].AuthorName)
	}
}

func TestCreateFolderStampsActor(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeUsers{}, &fakeProber{}, zap.NewNop())

	f, err := svc.CreateFolder(context.Background(), &CreateFolderRequest{Name: "Сметы"}, user.Current{ID: "u1"})
	if err != nil {
		t.Fatalf("CreateFolder() error = %v", err)
	}
	if f.ID == 0 {
		t.Error("folder id not assigned")
	}
	if f.CreatedBy != "u1" {
		t.Errorf("CreatedBy = %q, want u1", f.CreatedBy)
	}
}

func TestUpdateFolderPartial(t *testing.T) {
	repo := newFakeRepository()
	desc := "старое описание"
	repo.folders[1] = &Folder{ID: 1, Name: "Сметы", Description: &desc}
	svc := NewService(repo, &fakeUsers{}, &fakeProber{}, zap.NewNop())

	newName := "Сметы 2024"
	f, err := svc.UpdateFolder(context.Background(), 1, &UpdateFolderRequest{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateFolder() error = %v", err)
	}
	if f.Name != newName {
		t.Errorf("Name = %q, want %q", f.Name, newName)
	}
	if f.Description == nil || *f.Description != desc {
		t.Errorf("Description = %v, want unchanged", f.Description)
	}
}

func TestUpdateFolderNotFound(t *testing.T) {
	svc := NewService(newFakeRepository(), &fakeUsers{}, &fakeProber{}, zap.NewNop())

	name := "x"
	_, err := svc.UpdateFolder(context.Background(), 99, &UpdateFolderRequest{Name: &name})
	if !errors.Is(err, apperrors.ErrFolderNotFound) {
		t.Fatalf("error = %v, want ErrFolderNotFound", err)
	}
}

func TestAttachRequiresExistingFolder(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeUsers{}, &fakeProber{}, zap.NewNop())

	err := svc.Attach(context.Background(), 99, 10, user.Current{ID: "u1"})
	if !errors.Is(err, apperrors.ErrFolderNotFound) {
		t.Fatalf("error = %v, want ErrFolderNotFound", err)
	}
	if len(repo.attached) != 0 {
		t.Errorf("attached = %v, want none", repo.attached)
	}
}

func TestDeleteFolderWithFilesFails(t *testing.T) {
	repo := newFakeRepository()
	repo.folders[1] = &Folder{ID: 1, Name: "Сметы"}
	repo.files[1] = []*attachment.Attachment{{ID: 10}}
	svc := NewService(repo, &fakeUsers{}, &fakeProber{}, zap.NewNop())

	err := svc.DeleteFolder(context.Background(), 1)
	var repoErr *apperrors.RepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("error = %v, want RepositoryError", err)
	}
}
