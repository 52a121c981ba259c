// Package iprestriction evaluates and manages the regex-based IP access
// rules attached to secrets, plus the user-independent global rules.
package iprestriction

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/events"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/iprestrictions"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// Pattern is one compiled allow/deny rule.
type Pattern struct {
	regex *regexp.Regexp
	allow bool
}

// PatternSet is an ordered rule evaluator. The first matching pattern
// decides; a caller IP matching no pattern is allowed. Default-allow is
// a deliberate choice: restrictions narrow access only once configured,
// and an empty rule set must not lock every caller out.
type PatternSet struct {
	patterns []Pattern
}

// Empty reports whether the set contains no rules.
func (s *PatternSet) Empty() bool {
	return len(s.patterns) == 0
}

// Allowed evaluates the caller IP against the rules in order.
func (s *PatternSet) Allowed(ip string) bool {
	for _, p := range s.patterns {
		if p.regex.MatchString(ip) {
			return p.allow
		}
	}
	return true
}

// Service manages IP restrictions and compiles them for evaluation.
type Service struct {
	repo      iprestrictions.Repository
	publisher events.Publisher
	logger    logging.Logger
}

func NewService(repo iprestrictions.Repository, publisher events.Publisher, logger logging.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

// CheckGlobalIpRestrictions compiles the restrictions that apply to all
// secrets.
func (s *Service) CheckGlobalIpRestrictions(ctx context.Context) (*PatternSet, error) {
	list, err := s.repo.FindAllGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading global ip restrictions: %w", err)
	}
	return s.compile(ctx, list), nil
}

// CheckIpRestrictionsBySecret compiles the restrictions scoped to one
// secret.
func (s *Service) CheckIpRestrictionsBySecret(ctx context.Context, secretID int64) (*PatternSet, error) {
	list, err := s.repo.FindAllBySecretID(ctx, secretID)
	if err != nil {
		return nil, fmt.Errorf("error loading ip restrictions for secret: %w", err)
	}
	return s.compile(ctx, list), nil
}

func (s *Service) compile(ctx context.Context, list []*models.IpRestriction) *PatternSet {
	set := &PatternSet{}
	for _, r := range list {
		if r.Status != models.StatusActive {
			continue
		}
		re, err := regexp.Compile(r.IpPattern)
		if err != nil {
			s.logger.Warn(ctx, "skipping invalid ip pattern", "restriction_id", r.ID)
			continue
		}
		set.patterns = append(set.patterns, Pattern{regex: re, allow: r.Allow})
	}
	return set
}

// UpdateIpRestrictionsForSecret synchronizes the stored non-global
// restrictions of a secret with the desired set: id-less entries are
// inserted, entries with an id are updated, stored rows whose id is not
// in the desired set are deleted.
func (s *Service) UpdateIpRestrictionsForSecret(ctx context.Context, userID, secretID int64, desired []models.IpRestrictionRequest) error {
	for _, d := range desired {
		if d.Global {
			return shared.ErrGlobalRestriction
		}
	}

	existing, err := s.repo.FindAllBySecretID(ctx, secretID)
	if err != nil {
		return fmt.Errorf("error loading ip restrictions for secret: %w", err)
	}

	now := time.Now()
	keep := make(map[int64]struct{}, len(desired))

	for _, d := range desired {
		entity := &models.IpRestriction{
			ID:           d.ID,
			UserID:       userID,
			SecretID:     sql.NullInt64{Int64: secretID, Valid: true},
			IpPattern:    d.IpPattern,
			Allow:        d.Allow,
			Status:       models.StatusActive,
			CreationDate: now,
			LastModified: now,
		}

		saved, err := s.repo.Save(ctx, entity)
		if err != nil {
			return fmt.Errorf("error saving ip restriction: %w", err)
		}
		keep[saved.ID] = struct{}{}
	}

	for _, e := range existing {
		if _, ok := keep[e.ID]; ok {
			continue
		}
		if err := s.repo.Delete(ctx, e.ID); err != nil {
			return fmt.Errorf("error deleting ip restriction: %w", err)
		}
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    userID,
		EntityID:  secretID,
		Operation: models.EventSave,
		Target:    models.TargetIpRestriction,
	})

	return nil
}

// SaveGlobal stores a global restriction. Requests carrying a secret
// binding are rejected; those belong to the secret-scoped path.
func (s *Service) SaveGlobal(ctx context.Context, userID int64, req models.IpRestrictionRequest) (*models.IpRestriction, error) {
	if !req.Global {
		return nil, shared.ErrNotGlobalRestriction
	}

	now := time.Now()
	entity := &models.IpRestriction{
		ID:           req.ID,
		UserID:       userID,
		IpPattern:    req.IpPattern,
		Allow:        req.Allow,
		Status:       models.StatusActive,
		CreationDate: now,
		LastModified: now,
	}

	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("error saving global ip restriction: %w", err)
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    userID,
		EntityID:  saved.ID,
		Operation: models.EventSave,
		Target:    models.TargetIpRestriction,
	})

	return saved, nil
}

// DeleteGlobal removes a global restriction; deleting a secret-scoped
// row through this path is rejected.
func (s *Service) DeleteGlobal(ctx context.Context, userID, id int64) error {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !entity.Global() {
		return shared.ErrNotGlobalRestriction
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(ctx, models.Event{
		UserID:    userID,
		EntityID:  id,
		Operation: models.EventDelete,
		Target:    models.TargetIpRestriction,
	})

	return nil
}
