package reconcile

import (
	"io"

	"backend/internal/app/attachment"
)

// RemoteFile is an attachment already linked to the parent, together with
// its link-row classification.
type RemoteFile struct {
	Attachment attachment.Attachment `json:"attachment"`
	TypeID     *uint64               `json:"type_id,omitempty"`
}

// NewFile is a locally queued upload.
type NewFile struct {
	Name        string
	MimeType    string
	Size        int64
	Description *string
	TypeID      *uint64
	Content     io.Reader
}

// WorkingSet is one edit session's pending attachment changes. Submit
// never mutates it; only MarkPersisted clears the pending parts, so a
// failed submit can be retried without re-picking files.
type WorkingSet struct {
	Remote       []RemoteFile
	New          []NewFile
	RemovedIDs   []uint64
	ChangedTypes map[uint64]uint64
}

func NewWorkingSet(remote []RemoteFile) *WorkingSet {
	return &WorkingSet{
		Remote:       remote,
		ChangedTypes: make(map[uint64]uint64),
	}
}

func (ws *WorkingSet) QueueFile(f NewFile) {
	ws.New = append(ws.New, f)
}

func (ws *WorkingSet) MarkRemoved(id uint64) {
	for _, existing := range ws.RemovedIDs {
		if existing == id {
			return
		}
	}
	ws.RemovedIDs = append(ws.RemovedIDs, id)
}

func (ws *WorkingSet) SetType(id, typeID uint64) {
	if ws.ChangedTypes == nil {
		ws.ChangedTypes = make(map[uint64]uint64)
	}
	ws.ChangedTypes[id] = typeID
}

func (ws *WorkingSet) Dirty() bool {
	return len(ws.New) > 0 || len(ws.RemovedIDs) > 0 || len(ws.ChangedTypes) > 0
}

func (ws *WorkingSet) isRemoved(id uint64) bool {
	for _, removed := range ws.RemovedIDs {
		if removed == id {
			return true
		}
	}
	return false
}

// effectiveType returns the pending classification for a remote file,
// preferring an unsubmitted type change over the loaded one.
func (ws *WorkingSet) effectiveType(rf RemoteFile) *uint64 {
	if t, ok := ws.ChangedTypes[rf.Attachment.ID]; ok {
		return &t
	}
	return rf.TypeID
}

// MarkPersisted folds a successful submit back into the set: removed
// files drop out of Remote, pending type changes are applied, server
// confirmed rows are appended, and all pending parts are cleared.
func (ws *WorkingSet) MarkPersisted(created []RemoteFile) {
	remote := make([]RemoteFile, 0, len(ws.Remote)+len(created))
	for _, rf := range ws.Remote {
		if ws.isRemoved(rf.Attachment.ID) {
			continue
		}
		rf.TypeID = ws.effectiveType(rf)
		remote = append(remote, rf)
	}
	ws.Remote = append(remote, created...)

	ws.New = nil
	ws.RemovedIDs = nil
	ws.ChangedTypes = make(map[uint64]uint64)
}
