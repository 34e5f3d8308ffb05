package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeQueueSpec(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func TestQueueAddListProcess(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	dir := t.TempDir()
	for _, name := range []string{"f1.png", "f2.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0x89}, 0o644); err != nil {
			t.Fatalf("write frame: %v", err)
		}
	}
	good := writeQueueSpec(t, dir, "good.json",
		`{"name": "demo", "delays": ["1/10"], "frames": ["f*.png"]}`)
	bad := writeQueueSpec(t, dir, "bad.json", `{"delays": []}`)

	out, err := runCLI(t, configPath, "queue", "add", good, bad)
	if err != nil {
		t.Fatalf("queue add: %v", err)
	}
	requireContains(t, out, "Queued "+good)
	requireContains(t, out, "Queued "+bad)

	out, err = runCLI(t, configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "pending")

	out, err = runCLI(t, configPath, "queue", "process")
	if err != nil {
		t.Fatalf("queue process: %v", err)
	}
	requireContains(t, out, "1 loaded, 1 failed")

	out, err = runCLI(t, configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "loaded")
	requireContains(t, out, "failed")

	out, err = runCLI(t, configPath, "queue", "health")
	if err != nil {
		t.Fatalf("queue health: %v", err)
	}
	requireContains(t, out, "Total:   2")
	requireContains(t, out, "Loaded:  1")
	requireContains(t, out, "Failed:  1")
}

func TestQueueAddRejectsDuplicate(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())
	spec := writeQueueSpec(t, t.TempDir(), "anim.json", `{"delays": [], "frames": []}`)

	if _, err := runCLI(t, configPath, "queue", "add", spec); err != nil {
		t.Fatalf("queue add: %v", err)
	}
	if _, err := runCLI(t, configPath, "queue", "add", spec); err == nil {
		t.Fatal("expected duplicate add to fail")
	}
}

func TestQueueRemoveAndClear(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())
	dir := t.TempDir()
	first := writeQueueSpec(t, dir, "a.json", `{"delays": [], "frames": []}`)
	second := writeQueueSpec(t, dir, "b.json", `{"delays": [], "frames": []}`)

	if _, err := runCLI(t, configPath, "queue", "add", first, second); err != nil {
		t.Fatalf("queue add: %v", err)
	}

	out, err := runCLI(t, configPath, "queue", "remove", "1")
	if err != nil {
		t.Fatalf("queue remove: %v", err)
	}
	requireContains(t, out, "Removed item 1")

	// Default clear only touches loaded and failed items; the remaining
	// pending item needs --all.
	out, err = runCLI(t, configPath, "queue", "clear")
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	requireContains(t, out, "Removed 0 item(s)")

	out, err = runCLI(t, configPath, "queue", "clear", "--all")
	if err != nil {
		t.Fatalf("queue clear --all: %v", err)
	}
	requireContains(t, out, "Removed 1 item(s)")

	out, err = runCLI(t, configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "Queue is empty")
}

func TestQueueRetryRequiresFailedItem(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())
	spec := writeQueueSpec(t, t.TempDir(), "anim.json", `{"delays": [], "frames": []}`)

	if _, err := runCLI(t, configPath, "queue", "add", spec); err != nil {
		t.Fatalf("queue add: %v", err)
	}
	if _, err := runCLI(t, configPath, "queue", "retry", "1"); err == nil {
		t.Fatal("expected retry of a pending item to fail")
	}
}
