package queue_test

import (
	"context"
	"errors"
	"testing"

	"apngforge/internal/queue"
	"apngforge/internal/testsupport"
)

func TestOpenInitializesSchemaAndInserts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item, err := store.Add(ctx, "/specs/anim.json")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("expected item ID to be assigned")
	}
	if item.Status != queue.StatusPending {
		t.Fatalf("new item status = %s, want pending", item.Status)
	}

	fetched, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.SpecPath != "/specs/anim.json" {
		t.Fatalf("unexpected fetched item: %#v", fetched)
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.AddSpec(t, store, "/specs/anim.json")
	if _, err := store.Add(ctx, "/specs/anim.json"); !errors.Is(err, queue.ErrDuplicateSpec) {
		t.Fatalf("expected ErrDuplicateSpec, got %v", err)
	}
}

func TestAddRequiresPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.Add(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank spec path")
	}
}

func TestLifecycleTransitions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item := testsupport.AddSpec(t, store, "/specs/anim.json")

	if err := store.MarkLoading(ctx, item.ID, "run-1"); err != nil {
		t.Fatalf("MarkLoading: %v", err)
	}
	loading, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loading.Status != queue.StatusLoading || loading.RunID != "run-1" {
		t.Fatalf("unexpected loading item: %#v", loading)
	}

	if err := store.MarkLoaded(ctx, item.ID, "demo", 12, 3, true); err != nil {
		t.Fatalf("MarkLoaded: %v", err)
	}
	loaded, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.Status != queue.StatusLoaded || loaded.Name != "demo" || loaded.FrameCount != 12 {
		t.Fatalf("unexpected loaded item: %#v", loaded)
	}
	if loaded.Loops != 3 || !loaded.SkipFirst {
		t.Fatalf("playback fields not persisted: %#v", loaded)
	}

	if err := store.MarkFailed(ctx, item.ID, "boom"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	failed, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if failed.Status != queue.StatusFailed || failed.ErrorMessage != "boom" {
		t.Fatalf("unexpected failed item: %#v", failed)
	}
}

func TestRetryOnlyFailedItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item := testsupport.AddSpec(t, store, "/specs/anim.json")

	if err := store.Retry(ctx, item.ID); err == nil {
		t.Fatal("expected error retrying a pending item")
	}

	if err := store.MarkFailed(ctx, item.ID, "boom"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if err := store.Retry(ctx, item.ID); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	retried, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if retried.Status != queue.StatusPending || retried.ErrorMessage != "" {
		t.Fatalf("unexpected retried item: %#v", retried)
	}
}

func TestNextPendingOrdersByInsertion(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := testsupport.AddSpec(t, store, "/specs/one.json")
	testsupport.AddSpec(t, store, "/specs/two.json")

	next, err := store.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending: %v", err)
	}
	if next == nil || next.ID != first.ID {
		t.Fatalf("expected first item, got %#v", next)
	}

	if err := store.MarkLoaded(ctx, first.ID, "", 0, 0, false); err != nil {
		t.Fatalf("MarkLoaded: %v", err)
	}
	next, err = store.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending: %v", err)
	}
	if next == nil || next.SpecPath != "/specs/two.json" {
		t.Fatalf("expected second item, got %#v", next)
	}
}

func TestClearAndHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	a := testsupport.AddSpec(t, store, "/specs/a.json")
	testsupport.AddSpec(t, store, "/specs/b.json")
	if err := store.MarkFailed(ctx, a.ID, "boom"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Total != 2 || health.Pending != 1 || health.Failed != 1 {
		t.Fatalf("unexpected health: %#v", health)
	}

	removed, err := store.Clear(ctx, queue.StatusFailed)
	if err != nil {
		t.Fatalf("Clear failed items: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	removed, err = store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear all: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 remaining removal, got %d", removed)
	}
}

func TestRemoveMissingItem(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if err := store.Remove(context.Background(), 42); err == nil {
		t.Fatal("expected error removing missing item")
	}
}
