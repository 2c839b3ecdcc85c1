package v1

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"kontrakt/internal/excel"
	"kontrakt/internal/model"
)

// workbookSession one uploaded workbook held for the duration of an import
// conversation. Sessions are explicit values keyed by id; there is no ambient
// "current workbook" anywhere in the process.
type workbookSession struct {
	ID          string
	FileName    string
	Workbook    *excel.Workbook
	Descriptors []model.SheetDescriptor
	CreatedAt   time.Time
}

// sessionRegistry in-memory session table.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*workbookSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*workbookSession)}
}

// Add registers a workbook and returns its session.
func (r *sessionRegistry) Add(wb *excel.Workbook, descriptors []model.SheetDescriptor) *workbookSession {
	session := &workbookSession{
		ID:          uuid.New().String(),
		FileName:    wb.FileName(),
		Workbook:    wb,
		Descriptors: descriptors,
		CreatedAt:   time.Now(),
	}
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session
}

// Get looks a session up by id.
func (r *sessionRegistry) Get(id string) (*workbookSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove drops a session and closes its workbook.
func (r *sessionRegistry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		_ = s.Workbook.Close()
	}
}
