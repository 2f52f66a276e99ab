// Package editor implements the vendor's pricing editing session: a draft
// configuration mutated only through typed field edits, saved as one
// whole-document write.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"partnerportal/internal/domain/pricing"
)

// InvalidDraftError reports a save attempt on a draft that failed
// validation, carrying the field errors for the form.
type InvalidDraftError struct {
	Result pricing.ValidationResult
}

func (e *InvalidDraftError) Error() string {
	return "editor: draft is invalid: " + e.Result.String()
}

// Session owns one vendor's draft for one car. Each applied edit produces
// a fresh snapshot, so a snapshot handed out earlier never changes under
// the caller. Sessions are single-writer; the store write is the only
// blocking operation.
type Session struct {
	store  pricing.Repository
	logger *slog.Logger
	draft  *pricing.Configuration
	now    func() time.Time
}

// NewSession starts editing from an existing configuration snapshot.
func NewSession(cfg *pricing.Configuration, store pricing.Repository, logger *slog.Logger) *Session {
	return &Session{
		store:  store,
		logger: logger,
		draft:  cfg.Clone(),
		now:    time.Now,
	}
}

// Draft returns the current snapshot. Mutating the returned value does not
// affect the session.
func (s *Session) Draft() *pricing.Configuration {
	return s.draft.Clone()
}

// Apply validates and applies one field edit. On failure the draft keeps
// its previous snapshot.
func (s *Session) Apply(edit FieldEdit) error {
	next := s.draft.Clone()
	if err := edit.apply(next); err != nil {
		return fmt.Errorf("editor: %s: %w", edit.Field(), err)
	}
	next.State = pricing.StateDraft
	s.draft = next
	return nil
}

// Validate runs the full validation pass against the draft and returns the
// field errors for the form.
func (s *Session) Validate() pricing.ValidationResult {
	return s.draft.Validate()
}

// Save validates the draft and persists it as a whole-document overwrite.
// A failed write keeps the draft intact so the vendor can retry without
// losing edits.
func (s *Session) Save(ctx context.Context) error {
	res := s.draft.Validate()
	if !res.OK() {
		return &InvalidDraftError{Result: res}
	}

	snapshot := s.draft.Clone()
	snapshot.State = pricing.StateValid
	snapshot.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, snapshot); err != nil {
		if s.logger != nil {
			s.logger.Warn("pricing save failed, draft retained",
				"vendor", snapshot.Vendor, "car", snapshot.Car, "error", err)
		}
		return fmt.Errorf("editor: save: %w", err)
	}

	s.draft = snapshot
	if s.logger != nil {
		s.logger.Info("pricing configuration saved",
			"vendor", snapshot.Vendor, "car", snapshot.Car)
	}
	return nil
}
