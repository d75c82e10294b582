// Package prefs implements the session-scoped mode preference store.
// Records are JSON-wrapped; plain-string legacy values are accepted on read
// and rewritten. Every storage failure is non-fatal: the uploader behaves
// identically except preferences stop persisting.
package prefs

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pdfsmaller/internal/errors"
	"pdfsmaller/internal/log"
	"pdfsmaller/pkg/types"
)

// RecordVersion is written into every persisted record. On read, any
// version with the "1." prefix is accepted; others clear the entry.
const RecordVersion = "1.0"

// probeKey is the throwaway key used to test store availability.
const probeKey = "pdfsmaller-prefs-probe"

// Record is the persisted form of a mode preference.
type Record struct {
	Mode      string `json:"mode"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ResolveOptions are the inputs to initial-mode resolution.
type ResolveOptions struct {
	LegacyMultiple     bool
	DefaultMode        string
	RememberPreference bool
	Key                string
}

// Resolution reports which input decided the initial mode.
type Resolution struct {
	InitialMode              types.Mode
	BasedOnMultipleAttribute bool
	BasedOnDefaultMode       bool
	SessionPreferenceUsed    bool
	// Errors collects non-fatal problems hit along the way (invalid
	// values, store failures). They are reported, never thrown.
	Errors []error
}

// Store reads and writes mode preferences on a SessionStore.
type Store struct {
	backend   SessionStore
	probed    bool
	available bool
}

// NewStore creates a preference store over the default in-process session
// facility.
func NewStore() *Store {
	return &Store{backend: newTTLStore()}
}

// NewStoreWith creates a preference store over a custom backend. Used by
// tests and by front-ends that bring their own session facility.
func NewStoreWith(backend SessionStore) *Store {
	return &Store{backend: backend}
}

// Available probes the backend with a throwaway key on first use. When the
// probe fails every subsequent operation returns a benign null/false.
func (s *Store) Available() bool {
	if s.probed {
		return s.available
	}
	s.probed = true

	if s.backend == nil {
		s.available = false
		log.Warn("preference store: no backend, preferences will not persist")
		return false
	}

	if err := s.backend.Set(probeKey, "1"); err != nil {
		s.available = false
		log.LogWithFields(log.F("error", err)).Warn("preference store unavailable")
		return false
	}
	if _, err := s.backend.Get(probeKey); err != nil {
		s.available = false
		log.LogWithFields(log.F("error", err)).Warn("preference store unavailable")
		return false
	}
	_ = s.backend.Delete(probeKey)

	s.available = true
	return true
}

// Save persists the mode under key. Returns false on any failure.
func (s *Store) Save(mode types.Mode, key string) bool {
	if !mode.Valid() {
		log.Warnf("preference store: refusing to save invalid mode %q", mode)
		return false
	}
	if !s.Available() {
		return false
	}

	rec := Record{
		Mode:      mode.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   RecordVersion,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		log.LogWithFields(log.F("error", err)).Warn("preference store: marshal failed")
		return false
	}

	if err := s.backend.Set(key, string(data)); err != nil {
		log.LogWithFields(log.F("key", key), log.F("error", err)).Warn("preference store: write failed")
		return false
	}
	return true
}

// Load returns the stored mode for key, or nil when nothing valid is
// stored. Corrupt entries are cleared; legacy plain-string entries are
// rewritten in record form.
func (s *Store) Load(key string) *types.Mode {
	if !s.Available() {
		return nil
	}

	raw, err := s.backend.Get(key)
	if err != nil {
		log.LogWithFields(log.F("key", key), log.F("error", err)).Warn("preference store: read failed")
		return nil
	}
	if raw == "" {
		return nil
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// Legacy path: the value may be a bare mode string.
		if mode, ok := types.ParseMode(raw); ok {
			log.Debugf("preference store: migrating legacy value %q", raw)
			s.Save(mode, key)
			return &mode
		}
		log.Warnf("preference store: clearing corrupt entry for %s", key)
		s.Clear(key)
		return nil
	}

	if !strings.HasPrefix(rec.Version, "1.") {
		log.Warnf("preference store: clearing entry with unsupported version %q", rec.Version)
		s.Clear(key)
		return nil
	}

	mode, ok := types.ParseMode(rec.Mode)
	if !ok {
		log.Warnf("preference store: clearing entry with invalid mode %q", rec.Mode)
		s.Clear(key)
		return nil
	}
	return &mode
}

// Clear removes the entry for key. Returns false on failure.
func (s *Store) Clear(key string) bool {
	if !s.Available() {
		return false
	}
	if err := s.backend.Delete(key); err != nil {
		log.LogWithFields(log.F("key", key), log.F("error", err)).Warn("preference store: delete failed")
		return false
	}
	return true
}

// ResolveInitial applies the initial-mode decision tree: the legacy
// multiple flag is the weakest candidate, an explicit default overrides it,
// and a remembered session preference overrides both. Invalid values are
// collected and never override a prior candidate.
func (s *Store) ResolveInitial(opts ResolveOptions) Resolution {
	res := Resolution{InitialMode: types.Single}

	if opts.LegacyMultiple {
		res.InitialMode = types.Batch
		res.BasedOnMultipleAttribute = true
	}

	if opts.DefaultMode != "" {
		if mode, ok := types.ParseMode(opts.DefaultMode); ok {
			res.InitialMode = mode
			res.BasedOnDefaultMode = true
			res.BasedOnMultipleAttribute = false
		} else {
			res.Errors = append(res.Errors, errors.NewAttributeError(
				"invalid default mode", "default-mode", opts.DefaultMode,
				errors.InvalidDefaultMode))
		}
	}

	if opts.RememberPreference {
		key := opts.Key
		if key == "" {
			key = defaultKey()
		}
		if saved := s.Load(key); saved != nil {
			res.InitialMode = *saved
			res.SessionPreferenceUsed = true
			res.BasedOnDefaultMode = false
			res.BasedOnMultipleAttribute = false
		} else if !s.Available() {
			res.Errors = append(res.Errors, errors.NewStoreError(
				"session storage unavailable", key,
				errors.SessionPreferenceError, nil))
		}
	}

	if !res.InitialMode.Valid() {
		res.Errors = append(res.Errors, errors.NewKind(
			fmt.Sprintf("resolver produced invalid mode %q", res.InitialMode),
			errors.InvalidResolvedMode))
		res.InitialMode = types.Single
	}

	return res
}

// HandleModeChange persists a user-initiated mode change when preference
// memory is enabled. Returns whether a record was written.
func (s *Store) HandleModeChange(mode types.Mode, opts ResolveOptions) bool {
	if !opts.RememberPreference {
		return false
	}
	key := opts.Key
	if key == "" {
		key = defaultKey()
	}
	return s.Save(mode, key)
}

// The process-wide shared store. Instances that want isolation construct
// their own Store with NewStoreWith.
var shared = NewStore()

// Shared returns the process-wide preference store.
func Shared() *Store {
	return shared
}

func defaultKey() string {
	return "pdfsmaller-upload-mode"
}
