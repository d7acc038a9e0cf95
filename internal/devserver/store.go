// Package devserver is a local stand-in for the Multi-Format Intake backend.
// It implements the wire contract the CLI speaks — multipart intake, profile
// read/replace, dataset save, health — with an in-memory store and canned
// classification, so the client can be exercised without the real
// extraction pipeline.
package devserver

import (
	"sync"
	"time"
)

// Record is one processed upload kept in memory.
type Record struct {
	FileID         string         `json:"file_id"`
	Filename       string         `json:"filename"`
	InputType      string         `json:"input_type"`
	Classification map[string]any `json:"classification"`
	ExtractedData  map[string]any `json:"extracted_data"`
	UploadedAt     time.Time      `json:"uploaded_at"`
	Saved          bool           `json:"saved"`
}

// Store holds processed uploads and the single profile record.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	profile Profile
}

// Profile mirrors the backend's user record.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
		profile: Profile{Username: "Admin User", Email: "admin@example.com", Role: "Administrator"},
	}
}

func (s *Store) Put(r *Record) {
	s.mu.Lock()
	s.records[r.FileID] = r
	s.mu.Unlock()
}

func (s *Store) Get(fileID string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[fileID]
	return r, ok
}

func (s *Store) MarkSaved(fileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[fileID]
	if !ok {
		return false
	}
	r.Saved = true
	return true
}

func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Store) SetProfile(p Profile) {
	s.mu.Lock()
	if p.Role == "" {
		p.Role = s.profile.Role
	}
	s.profile = p
	s.mu.Unlock()
}
