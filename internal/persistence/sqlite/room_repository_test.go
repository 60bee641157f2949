package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/pousada-manager/internal/persistence"
)

func TestRoomRepository_CreateRoom(t *testing.T) {
	repo := NewRoomRepository(setupTestPool(t))
	ctx := context.Background()

	notes := "vista para o jardim"
	room := persistence.Room{
		ID:        "room1",
		Number:    "101",
		Category:  "Standard",
		DailyRate: 250.00,
		Features:  []string{"ar-condicionado", "frigobar"},
		Notes:     &notes,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	err := repo.CreateRoom(ctx, room)
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	retrieved, err := repo.GetRoom(ctx, "room1")
	if err != nil {
		t.Fatalf("GetRoom failed: %v", err)
	}

	if retrieved.Number != "101" {
		t.Errorf("Expected number '101', got '%s'", retrieved.Number)
	}
	if retrieved.Category != "Standard" {
		t.Errorf("Expected category 'Standard', got '%s'", retrieved.Category)
	}
	if retrieved.DailyRate != 250.00 {
		t.Errorf("Expected daily rate 250.00, got %v", retrieved.DailyRate)
	}
	if len(retrieved.Features) != 2 || retrieved.Features[0] != "ar-condicionado" {
		t.Errorf("Expected features to round-trip, got %v", retrieved.Features)
	}
	if retrieved.Notes == nil || *retrieved.Notes != "vista para o jardim" {
		t.Errorf("Expected notes to round-trip, got %v", retrieved.Notes)
	}
}

func TestRoomRepository_CreateRoom_DuplicateNumber(t *testing.T) {
	repo := NewRoomRepository(setupTestPool(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	first := persistence.Room{ID: "room1", Number: "101", Category: "Standard", DailyRate: 250, CreatedAt: now, UpdatedAt: now}
	if err := repo.CreateRoom(ctx, first); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	second := persistence.Room{ID: "room2", Number: "101", Category: "Suite", DailyRate: 400, CreatedAt: now, UpdatedAt: now}
	err := repo.CreateRoom(ctx, second)
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate for repeated room number, got %v", err)
	}
}

func TestRoomRepository_GetRoomByNumber(t *testing.T) {
	repo := NewRoomRepository(setupTestPool(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	room := persistence.Room{ID: "room1", Number: "201", Category: "Suite", DailyRate: 400, CreatedAt: now, UpdatedAt: now}
	if err := repo.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	retrieved, err := repo.GetRoomByNumber(ctx, "201")
	if err != nil {
		t.Fatalf("GetRoomByNumber failed: %v", err)
	}
	if retrieved.ID != "room1" {
		t.Errorf("Expected ID 'room1', got '%s'", retrieved.ID)
	}

	_, err = repo.GetRoomByNumber(ctx, "999")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown number, got %v", err)
	}
}

func TestRoomRepository_UpdateRoom(t *testing.T) {
	repo := NewRoomRepository(setupTestPool(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	room := persistence.Room{ID: "room1", Number: "101", Category: "Standard", DailyRate: 250, CreatedAt: now, UpdatedAt: now}
	if err := repo.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	room.Category = "Suite Master"
	room.DailyRate = 480.50
	room.UpdatedAt = now.Add(time.Hour)
	if err := repo.UpdateRoom(ctx, room); err != nil {
		t.Fatalf("UpdateRoom failed: %v", err)
	}

	retrieved, err := repo.GetRoom(ctx, "room1")
	if err != nil {
		t.Fatalf("GetRoom failed: %v", err)
	}
	if retrieved.Category != "Suite Master" {
		t.Errorf("Expected category 'Suite Master', got '%s'", retrieved.Category)
	}
	if retrieved.DailyRate != 480.50 {
		t.Errorf("Expected daily rate 480.50, got %v", retrieved.DailyRate)
	}
}

func TestRoomRepository_UpdateRoom_NotFound(t *testing.T) {
	repo := NewRoomRepository(setupTestPool(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	room := persistence.Room{ID: "missing", Number: "101", Category: "Standard", DailyRate: 250, CreatedAt: now, UpdatedAt: now}

	err := repo.UpdateRoom(ctx, room)
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestRoomRepository_ListRooms(t *testing.T) {
	repo := NewRoomRepository(setupTestPool(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rooms := []persistence.Room{
		{ID: "room2", Number: "202", Category: "Suite", DailyRate: 400, CreatedAt: now, UpdatedAt: now},
		{ID: "room1", Number: "101", Category: "Standard", DailyRate: 250, CreatedAt: now, UpdatedAt: now},
	}
	for _, room := range rooms {
		if err := repo.CreateRoom(ctx, room); err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}
	}

	listed, err := repo.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}

	if len(listed) != 2 {
		t.Fatalf("Expected 2 rooms, got %d", len(listed))
	}
	if listed[0].Number != "101" || listed[1].Number != "202" {
		t.Errorf("Expected rooms ordered by number, got %s then %s", listed[0].Number, listed[1].Number)
	}
}

func TestRoomRepository_DeleteRoom(t *testing.T) {
	repo := NewRoomRepository(setupTestPool(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	room := persistence.Room{ID: "room1", Number: "101", Category: "Standard", DailyRate: 250, CreatedAt: now, UpdatedAt: now}
	if err := repo.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	if err := repo.DeleteRoom(ctx, "room1"); err != nil {
		t.Fatalf("DeleteRoom failed: %v", err)
	}

	_, err := repo.GetRoom(ctx, "room1")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.DeleteRoom(ctx, "room1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for second delete, got %v", err)
	}
}
