package reconcile

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/app/attachment"
	"backend/internal/app/link"
	"backend/internal/app/user"
	"backend/internal/apperrors"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const testUserID = "a3f1c2d4-0000-4000-8000-000000000001"

type fakeService struct {
	remote    []RemoteFile
	submitted *WorkingSet
	submitErr error
	purged    []uint64
}

func (f *fakeService) Load(_ context.Context, _ link.Kind, _ uint64) ([]RemoteFile, error) {
	return f.remote, nil
}

func (f *fakeService) Submit(_ context.Context, _ link.Kind, _ uint64, ws *WorkingSet, _ user.Current) (*Result, error) {
	f.submitted = ws
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &Result{}, nil
}

func (f *fakeService) Purge(_ context.Context, _ link.Kind, parentID uint64) error {
	f.purged = append(f.purged, parentID)
	return nil
}

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Identity())
	RegisterRoutes(r.Group("/api"), NewHandler(svc, zap.NewNop()))
	return r
}

func TestListAttachmentsUnknownKind(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/parents/invoices/1/attachments", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListAttachmentsInvalidID(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/parents/claims/abc/attachments", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSubmitRequiresIdentity(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/parents/claims/42/attachments", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSubmitParsesMultipartForm(t *testing.T) {
	svc := &fakeService{remote: []RemoteFile{
		{Attachment: attachment.Attachment{ID: 5}, TypeID: uintPtr(1)},
		{Attachment: attachment.Attachment{ID: 7}, TypeID: uintPtr(1)},
	}}
	r := newTestRouter(svc)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("files", "Акт осмотра.pdf")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("pdf-bytes"))
	mw.WriteField("type_ids", "3")
	mw.WriteField("removed_ids", "5")
	mw.WriteField("changed_types", `{"7": 9}`)
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/parents/claims/42/attachments", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", testUserID)
	req.Header.Set("X-User-Name", "Анна Смирнова")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	ws := svc.submitted
	if ws == nil {
		t.Fatal("service did not receive a working set")
	}
	if len(ws.New) != 1 || ws.New[0].Name != "Акт осмотра.pdf" {
		t.Errorf("New = %+v, want the uploaded file", ws.New)
	}
	if ws.New[0].TypeID == nil || *ws.New[0].TypeID != 3 {
		t.Errorf("New[0].TypeID = %v, want 3", ws.New[0].TypeID)
	}
	if len(ws.RemovedIDs) != 1 || ws.RemovedIDs[0] != 5 {
		t.Errorf("RemovedIDs = %v, want [5]", ws.RemovedIDs)
	}
	if ws.ChangedTypes[7] != 9 {
		t.Errorf("ChangedTypes = %v, want map[7:9]", ws.ChangedTypes)
	}
}

func TestSubmitValidationFailureReturns422(t *testing.T) {
	svc := &fakeService{submitErr: &apperrors.ValidationError{Reason: "file \"a.pdf\" has no attachment type"}}
	r := newTestRouter(svc)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("files", "a.pdf")
	fw.Write([]byte("x"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/parents/claims/42/attachments", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", testUserID)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestPurgeAttachments(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/parents/tickets/9/attachments", nil)
	req.Header.Set("X-User-ID", testUserID)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if len(svc.purged) != 1 || svc.purged[0] != 9 {
		t.Errorf("purged = %v, want [9]", svc.purged)
	}
}
