package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"hydration/internal/domain"
)

func TestCurrentProgressRoundTrip(t *testing.T) {
	db := New()
	ctx := context.Background()

	cur, err := db.LoadCurrent(ctx)
	if err != nil {
		t.Fatalf("LoadCurrent: %v", err)
	}
	if cur != nil {
		t.Fatalf("expected nil before first save, got %+v", cur)
	}

	now := time.Now()
	if err := db.SaveCurrent(ctx, 8, 5, now); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}

	cur, err = db.LoadCurrent(ctx)
	if err != nil {
		t.Fatalf("LoadCurrent: %v", err)
	}
	if cur == nil || cur.Goal != 8 || cur.GlassesDrunk != 5 || !cur.LastUpdate.Equal(now) {
		t.Fatalf("unexpected record: %+v", cur)
	}

	// Save overwrites the single record.
	if err := db.SaveCurrent(ctx, 8, 6, now.Add(time.Minute)); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}
	cur, _ = db.LoadCurrent(ctx)
	if cur.GlassesDrunk != 6 {
		t.Fatalf("expected overwrite, got %+v", cur)
	}
}

func TestHistoryOrderingAndUpsert(t *testing.T) {
	db := New()
	ctx := context.Background()

	for _, e := range []domain.DailyEntry{
		domain.NewDailyEntry("2026-03-05", 8, 4),
		domain.NewDailyEntry("2026-03-07", 8, 8),
		domain.NewDailyEntry("2026-03-06", 8, 2),
	} {
		if err := db.UpsertHistory(ctx, e); err != nil {
			t.Fatalf("UpsertHistory: %v", err)
		}
	}

	entries, err := db.LoadAllHistory(ctx)
	if err != nil {
		t.Fatalf("LoadAllHistory: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"2026-03-07", "2026-03-06", "2026-03-05"}
	for i, date := range want {
		if entries[i].Date != date {
			t.Fatalf("entries[%d].Date = %s; want %s", i, entries[i].Date, date)
		}
	}

	// Upsert with an existing date overwrites, never duplicates.
	if err := db.UpsertHistory(ctx, domain.NewDailyEntry("2026-03-06", 8, 7)); err != nil {
		t.Fatalf("UpsertHistory: %v", err)
	}
	entries, _ = db.LoadAllHistory(ctx)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after upsert, got %d", len(entries))
	}
	if entries[1].GlassesDrunk != 7 {
		t.Fatalf("expected overwritten entry, got %+v", entries[1])
	}
}

func TestUpdateHistoryGlasses(t *testing.T) {
	db := New()
	ctx := context.Background()

	if err := db.UpsertHistory(ctx, domain.NewDailyEntry("2026-03-06", 10, 3)); err != nil {
		t.Fatalf("UpsertHistory: %v", err)
	}

	updated, err := db.UpdateHistoryGlasses(ctx, "2026-03-06", 5)
	if err != nil {
		t.Fatalf("UpdateHistoryGlasses: %v", err)
	}
	if updated.GlassesDrunk != 5 || updated.Percentage != 50 || updated.Goal != 10 {
		t.Fatalf("unexpected entry: %+v", updated)
	}
	if updated.Motivation != domain.MotivationMessage(50) {
		t.Fatalf("motivation not recomputed: %+v", updated)
	}

	_, err = db.UpdateHistoryGlasses(ctx, "2026-01-01", 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
	entries, _ := db.LoadAllHistory(ctx)
	if len(entries) != 1 {
		t.Fatalf("expected no entry created for unknown date, got %d", len(entries))
	}
}
