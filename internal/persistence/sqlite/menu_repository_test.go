package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/pousada-manager/internal/persistence"
)

func TestMenuRepository_ListSeededMenu(t *testing.T) {
	repo := NewMenuRepository(setupTestPool(t))
	ctx := context.Background()

	items, err := repo.ListMenuItems(ctx, true)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}

	if len(items) != 16 {
		t.Fatalf("Expected 16 seeded items, got %d", len(items))
	}

	// Ordered by category then name
	if items[0].Category != "bebidas" {
		t.Errorf("Expected first category 'bebidas', got '%s'", items[0].Category)
	}
}

func TestMenuRepository_CreateAndGet(t *testing.T) {
	repo := NewMenuRepository(setupTestPool(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	item := persistence.MenuItem{
		ID:        "menu-custom-01",
		Name:      "Caipirinha",
		Category:  "bebidas",
		Price:     18.90,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.CreateMenuItem(ctx, item); err != nil {
		t.Fatalf("CreateMenuItem failed: %v", err)
	}

	retrieved, err := repo.GetMenuItem(ctx, "menu-custom-01")
	if err != nil {
		t.Fatalf("GetMenuItem failed: %v", err)
	}
	if retrieved.Name != "Caipirinha" {
		t.Errorf("Expected name 'Caipirinha', got '%s'", retrieved.Name)
	}
	if retrieved.Price != 18.90 {
		t.Errorf("Expected price 18.90, got %v", retrieved.Price)
	}
}

func TestMenuRepository_UpdateMenuItem_Deactivate(t *testing.T) {
	repo := NewMenuRepository(setupTestPool(t))
	ctx := context.Background()

	item, err := repo.GetMenuItem(ctx, "menu-vinhos-01")
	if err != nil {
		t.Fatalf("GetMenuItem failed: %v", err)
	}

	item.Active = false
	item.UpdatedAt = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	if err := repo.UpdateMenuItem(ctx, item); err != nil {
		t.Fatalf("UpdateMenuItem failed: %v", err)
	}

	active, err := repo.ListMenuItems(ctx, true)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}
	if len(active) != 15 {
		t.Errorf("Expected 15 active items after deactivation, got %d", len(active))
	}

	all, err := repo.ListMenuItems(ctx, false)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}
	if len(all) != 16 {
		t.Errorf("Expected 16 items including inactive, got %d", len(all))
	}
}

func TestMenuRepository_InvalidCategory(t *testing.T) {
	repo := NewMenuRepository(setupTestPool(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	item := persistence.MenuItem{
		ID:        "menu-bad-01",
		Name:      "Item Estranho",
		Category:  "sobremesas",
		Price:     10,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := repo.CreateMenuItem(ctx, item)
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("Expected ErrConstraintViolation for unknown category, got %v", err)
	}
}

func TestMenuRepository_GetMenuItem_NotFound(t *testing.T) {
	repo := NewMenuRepository(setupTestPool(t))
	ctx := context.Background()

	_, err := repo.GetMenuItem(ctx, "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
