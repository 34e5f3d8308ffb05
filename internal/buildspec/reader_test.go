package buildspec_test

import (
	"os"
	"path/filepath"
	"testing"

	"apngforge/internal/buildspec"
)

func TestLoadDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFrameFiles(t, dir, "f.png")

	jsonBody := `{"name": "from-json", "delays": [], "frames": ["f.png"]}`
	xmlBody := `<animation name="from-xml"><frames><frame>f.png</frame></frames></animation>`

	cases := []struct {
		name     string
		file     string
		body     string
		wantName string
	}{
		{"json suffix", "spec.json", jsonBody, "from-json"},
		{"json suffix uppercase", "spec.JSON", jsonBody, "from-json"},
		{"xml suffix", "spec.xml", xmlBody, "from-xml"},
		{"unknown suffix falls back to xml", "spec.anim", xmlBody, "from-xml"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSpec(t, dir, tc.file, tc.body)
			doc, err := buildspec.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if doc.Name() != tc.wantName {
				t.Fatalf("Name = %q, want %q", doc.Name(), tc.wantName)
			}
			if doc.FrameCount() != 1 {
				t.Fatalf("FrameCount = %d, want 1", doc.FrameCount())
			}
		})
	}
}

func TestLoadResolvesAgainstSpecDirectory(t *testing.T) {
	specDir := t.TempDir()
	writeFrameFiles(t, specDir, "local.png")
	path := writeSpec(t, specDir, "anim.json", `{"delays": [], "frames": ["local.png"]}`)

	// Load from a different working directory than the spec's home.
	other := t.TempDir()
	chdir(t, other)

	doc, err := buildspec.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	frames := doc.Frames()
	if len(frames) != 1 || frames[0].Path != filepath.Join(specDir, "local.png") {
		t.Fatalf("expected frame anchored to the spec directory, got %v", frames)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := buildspec.Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing spec file")
	}
}

// chdir changes the working directory for the duration of the test,
// restoring the original directory during cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})
}
