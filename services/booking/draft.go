package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cleanhaven/models"
	"cleanhaven/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	draftKeyPrefix = "bookingdraft:"
	draftTTL       = 7 * 24 * time.Hour
)

// DraftStore is the persistence port for in-progress booking drafts. The
// production implementation is Redis; tests inject the in-memory one.
//
// Get returns (nil, nil) when no draft is stored or the stored blob is
// malformed — a corrupt draft is a recoverable condition, never an error.
type DraftStore interface {
	Get(ctx context.Context, draftID string) (*models.BookingDraft, error)
	Save(ctx context.Context, draftID string, draft models.BookingDraft) error
	Clear(ctx context.Context, draftID string) error
}

// RedisDraftStore keeps each draft as a single JSON blob under a fixed
// key prefix.
type RedisDraftStore struct {
	Client *redis.Client
}

func (s *RedisDraftStore) Get(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	data, err := s.Client.Get(ctx, draftKeyPrefix+draftID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read booking draft: %w", err)
	}

	// Unmarshal over defaults so fields absent from storage keep their
	// documented default values.
	draft := models.NewBookingDraft()
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		utils.GetLogger().Warn("discarding malformed booking draft",
			zap.String("draftID", draftID), zap.Error(err))
		return nil, nil
	}
	return &draft, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, draftID string, draft models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	if err := s.Client.Set(ctx, draftKeyPrefix+draftID, data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save booking draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Clear(ctx context.Context, draftID string) error {
	if err := s.Client.Del(ctx, draftKeyPrefix+draftID).Err(); err != nil {
		return fmt.Errorf("failed to clear booking draft: %w", err)
	}
	return nil
}

// MemoryDraftStore is the in-memory DraftStore used by tests. It stores
// serialized JSON so round-trip behavior matches the Redis store.
type MemoryDraftStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{entries: make(map[string][]byte)}
}

func (s *MemoryDraftStore) Get(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	s.mu.Lock()
	data, ok := s.entries[draftID]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	draft := models.NewBookingDraft()
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, nil
	}
	return &draft, nil
}

func (s *MemoryDraftStore) Save(ctx context.Context, draftID string, draft models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[draftID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Clear(ctx context.Context, draftID string) error {
	s.mu.Lock()
	delete(s.entries, draftID)
	s.mu.Unlock()
	return nil
}

// MergeDraft applies a partial update onto an existing draft. Only the
// fields the patch carries overwrite; everything else is preserved, so a
// wizard page can never clobber values set on an earlier page. Changing
// the service type prunes extras that are no longer whitelisted.
func MergeDraft(base models.BookingDraft, patch models.DraftPatch, cfg models.PricingConfig) models.BookingDraft {
	merged := base

	serviceChanged := false
	if patch.ServiceType != nil && *patch.ServiceType != base.ServiceType {
		merged.ServiceType = *patch.ServiceType
		serviceChanged = true
	}
	if patch.Frequency != nil {
		merged.Frequency = *patch.Frequency
	}
	if patch.Bedrooms != nil {
		merged.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		merged.Bathrooms = *patch.Bathrooms
	}
	if patch.OfficeSize != nil {
		merged.OfficeSize = *patch.OfficeSize
	}
	if patch.Extras != nil {
		merged.Extras = append([]string{}, (*patch.Extras)...)
	}
	if patch.ScheduledDate != nil {
		merged.ScheduledDate = *patch.ScheduledDate
	}
	if patch.ScheduledTime != nil {
		merged.ScheduledTime = *patch.ScheduledTime
	}
	if patch.Street != nil {
		merged.Street = *patch.Street
	}
	if patch.Unit != nil {
		merged.Unit = *patch.Unit
	}
	if patch.Suburb != nil {
		merged.Suburb = *patch.Suburb
	}
	if patch.City != nil {
		merged.City = *patch.City
	}
	if patch.CleanerPreference != nil {
		merged.CleanerPreference = *patch.CleanerPreference
	}
	if patch.SpecialInstructions != nil {
		merged.SpecialInstructions = *patch.SpecialInstructions
	}
	if patch.DiscountCode != nil {
		merged.DiscountCode = *patch.DiscountCode
	}
	if patch.FirstName != nil {
		merged.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		merged.LastName = *patch.LastName
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}

	if serviceChanged || patch.Extras != nil {
		merged = PruneExtras(merged, cfg)
	}
	return merged
}

// PruneExtras drops extras that are not whitelisted for the draft's
// current service type. Pruning an already-valid draft is a no-op.
func PruneExtras(draft models.BookingDraft, cfg models.PricingConfig) models.BookingDraft {
	svc := effectiveService(draft.ServiceType, cfg)
	kept := make([]string, 0, len(draft.Extras))
	for _, id := range draft.Extras {
		if cfg.ExtraAllowed(id, svc) {
			kept = append(kept, id)
		}
	}
	draft.Extras = kept
	return draft
}

// NormalizeDraft defensively cleans a draft assembled from untrusted
// sources: strings are trimmed, numbers are coalesced to their wizard
// defaults (0 bedrooms, 1 bathroom), and blank enums fall back to their
// defaults.
func NormalizeDraft(d models.BookingDraft) models.BookingDraft {
	d.ServiceType = strings.TrimSpace(d.ServiceType)
	if d.ServiceType == "" {
		d.ServiceType = models.ServiceStandard
	}
	d.Frequency = strings.TrimSpace(d.Frequency)
	if d.Frequency == "" {
		d.Frequency = models.FrequencyOneTime
	}
	if d.Bedrooms < 0 {
		d.Bedrooms = 0
	}
	if d.Bathrooms < 1 {
		d.Bathrooms = 1
	}
	d.OfficeSize = strings.TrimSpace(d.OfficeSize)
	d.ScheduledDate = strings.TrimSpace(d.ScheduledDate)
	d.ScheduledTime = strings.TrimSpace(d.ScheduledTime)
	d.Street = strings.TrimSpace(d.Street)
	d.Unit = strings.TrimSpace(d.Unit)
	d.Suburb = strings.TrimSpace(d.Suburb)
	d.City = strings.TrimSpace(d.City)
	d.CleanerPreference = strings.TrimSpace(d.CleanerPreference)
	if d.CleanerPreference == "" {
		d.CleanerPreference = models.CleanerNoPreference
	}
	d.SpecialInstructions = strings.TrimSpace(d.SpecialInstructions)
	d.DiscountCode = strings.TrimSpace(d.DiscountCode)
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	if d.Extras == nil {
		d.Extras = []string{}
	}
	return d
}
