package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eonite/portal-backend/internal/stock"
	"github.com/eonite/portal-backend/pkg/db"
	"github.com/eonite/portal-backend/pkg/db/models"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

// Service covers operator and client access to inventory. Writes are last
// write wins.
type Service interface {
	List(ctx context.Context, filter Filter) (*Summary, error)
	Create(ctx context.Context, input CreateInput) (*Record, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Record, error)
	SetClientQuantity(ctx context.Context, clientID, id uuid.UUID, quantity int) (*Record, error)
	DeclareClientStock(ctx context.Context, clientID, clientProductID uuid.UUID, quantity int) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

func (s *service) List(ctx context.Context, filter Filter) (*Summary, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}
	summary := &Summary{Records: make([]Record, 0, len(records))}
	for _, record := range records {
		record = classified(record)
		summary.Counts.Add(record.Level)
		if record.Quantity <= record.AlertThreshold {
			summary.LowStock++
		}
		summary.Records = append(summary.Records, record)
	}
	return summary, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Record, error) {
	if err := validateLevels(input.UpdateInput); err != nil {
		return nil, err
	}
	cp, err := s.repo.FindClientProduct(ctx, input.ClientProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client product")
	}
	if cp == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client product not found")
	}

	record := &models.Inventory{
		ID:                uuid.New(),
		ClientProductID:   input.ClientProductID,
		Quantity:          input.Quantity,
		AlertThreshold:    input.AlertThreshold,
		CriticalThreshold: input.CriticalThreshold,
		Notes:             input.Notes,
		LastUpdated:       s.now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "inventory already exists for client product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory")
	}
	return s.load(ctx, record.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Record, error) {
	if err := validateLevels(input); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"quantity":           input.Quantity,
		"alert_threshold":    input.AlertThreshold,
		"critical_threshold": input.CriticalThreshold,
		"last_updated":       s.now().UTC(),
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if err := s.apply(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// SetClientQuantity lets a client adjust the quantity of one of its own records.
func (s *service) SetClientQuantity(ctx context.Context, clientID, id uuid.UUID, quantity int) (*Record, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.ClientID != clientID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
	}
	if err := s.apply(ctx, id, map[string]any{"quantity": quantity, "last_updated": s.now().UTC()}); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// DeclareClientStock records the stock a client reports holding on its side.
func (s *service) DeclareClientStock(ctx context.Context, clientID, clientProductID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "declared stock must not be negative")
	}
	cp, err := s.repo.FindClientProduct(ctx, clientProductID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client product")
	}
	if cp == nil || cp.ClientID != clientID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "client product not found")
	}
	if _, err := s.repo.UpdateClientStock(ctx, clientProductID, quantity, s.now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update declared stock")
	}
	return nil
}

func (s *service) apply(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	changed, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory")
	}
	if !changed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*Record, error) {
	record, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
	}
	out := classified(*record)
	return &out, nil
}

func classified(r Record) Record {
	r.Level = stock.Classify(r.Quantity, r.AlertThreshold, r.CriticalThreshold)
	return r
}

// validateLevels rejects negative figures. Threshold ordering is left unchecked.
func validateLevels(input UpdateInput) error {
	if input.Quantity < 0 || input.AlertThreshold < 0 || input.CriticalThreshold < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity and thresholds must not be negative")
	}
	return nil
}
