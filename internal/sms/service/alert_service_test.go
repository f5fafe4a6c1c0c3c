package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
)

// TestAlertResolve tests the active -> resolved transition and filtering.
func TestAlertResolve(t *testing.T) {
	db, _ := setupLedgerTest(t)
	ctx := context.Background()

	repos := repository.NewRepositories(db)
	svc := NewAlertService(repos.Alert)

	p := seedProduct(t, db, "A-100", 3, 10)
	alert := &entity.Alert{
		ProductID: p.ID,
		Message:   "Low stock alert for Test product A-100: 3 remaining.",
		Status:    entity.AlertStatusActive,
	}
	if err := db.Create(alert).Error; err != nil {
		t.Fatalf("Failed to seed alert: %v", err)
	}

	if err := svc.Resolve(ctx, alert.ID); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	active, err := svc.List(ctx, entity.AlertStatusActive)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active alerts, got %d", len(active))
	}

	resolved, err := svc.List(ctx, entity.AlertStatusResolved)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved alert, got %d", len(resolved))
	}

	// Resolving a missing alert reports not found
	err = svc.Resolve(ctx, 9999)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
