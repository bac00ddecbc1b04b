package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileState represents the state of a single source page
type FileState struct {
	MTime  int64  `json:"mtime"`
	Hash   string `json:"hash"`
	Output string `json:"output"`
}

// State represents the incremental build state of a site
type State struct {
	Files        map[string]*FileState `json:"files"`
	TemplateHash string                `json:"template_hash"`
	BasePath     string                `json:"base_path"`
	LastBuildID  string                `json:"last_build_id,omitempty"`
	LastBuild    time.Time             `json:"last_build"`

	mu sync.Mutex
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	st := NewState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	if st.Files == nil {
		st.Files = make(map[string]*FileState)
	}

	return st, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged checks if a source page has changed since the last build
// Uses hybrid mtime + hash approach
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	mtime := info.ModTime().Unix()

	s.mu.Lock()
	fileState, exists := s.Files[path]
	s.mu.Unlock()
	if !exists {
		// New file
		return true, nil
	}

	// Fast path: check mtime first
	if mtime == fileState.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != fileState.Hash, nil
}

// Update records the current mtime and hash of a source page and where it was written
func (s *State) Update(path string, output string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[path] = &FileState{
		MTime:  info.ModTime().Unix(),
		Hash:   hash,
		Output: output,
	}

	return nil
}

// Forget drops a source page from the state
func (s *State) Forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Files, path)
}

// Lookup returns the recorded state of a source page
func (s *State) Lookup(path string) (FileState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fs, ok := s.Files[path]
	if !ok {
		return FileState{}, false
	}
	return *fs, true
}

// Reset forgets every page, forcing a full rebuild
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files = make(map[string]*FileState)
	s.TemplateHash = ""
	s.BasePath = ""
}

// Snapshot returns a copy of the recorded page states
func (s *State) Snapshot() map[string]FileState {
	s.mu.Lock()
	defer s.mu.Unlock()
	files := make(map[string]FileState, len(s.Files))
	for path, fs := range s.Files {
		files[path] = *fs
	}
	return files
}

// RecordBuild stores the identifier and time of the finished build
func (s *State) RecordBuild(buildID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastBuildID = buildID
	s.LastBuild = at
}

// GetMTime returns the modification time for a file
func (s *State) GetMTime(path string) time.Time {
	if fileState, ok := s.Lookup(path); ok {
		return time.Unix(fileState.MTime, 0)
	}
	return time.Time{}
}
