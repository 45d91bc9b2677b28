package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTempSiblingKeepsDirAndExtension(t *testing.T) {
	path := filepath.Join("clips", "out.final.mp4")
	got := TempSibling(path)

	if filepath.Dir(got) != "clips" {
		t.Fatalf("temp sibling dir = %q", filepath.Dir(got))
	}
	base := filepath.Base(got)
	if !strings.HasPrefix(base, ".out.final.vidio-") || !strings.HasSuffix(base, ".mp4") {
		t.Fatalf("unexpected temp sibling name %q", base)
	}
	if TempSibling(path) == got {
		t.Fatal("expected unique temp names")
	}
}

func TestPublishReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.mp4")
	temp := TempSibling(dst)
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(temp, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Publish(temp, dst); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content = %q, want new", got)
	}
	if _, err := os.Stat(temp); !os.IsNotExist(err) {
		t.Fatalf("temp file still present: %v", err)
	}
}

func TestPublishMissingTemp(t *testing.T) {
	dir := t.TempDir()
	if err := Publish(filepath.Join(dir, "missing"), filepath.Join(dir, "out.mp4")); err == nil {
		t.Fatal("expected error for missing temp file")
	}
}

func TestLockPathIsOwnedAndStable(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	t.Chdir(t.TempDir())

	rel, err := LockPath("clip.mp4")
	if err != nil {
		t.Fatalf("LockPath: %v", err)
	}
	abs, err := LockPath(filepath.Join(".", "sub", "..", "clip.mp4"))
	if err != nil {
		t.Fatalf("LockPath: %v", err)
	}
	if rel != abs {
		t.Fatalf("same output gave different locks: %q vs %q", rel, abs)
	}
	if filepath.Dir(rel) != filepath.Join(tmp, LockDirName) {
		t.Fatalf("lock outside temp dir: %q", rel)
	}
	if filepath.Base(rel) == "clip.mp4.lock" {
		t.Fatalf("lock must not reuse the output name: %q", rel)
	}
	other, _ := LockPath("other.mp4")
	if other == rel {
		t.Fatal("different outputs share a lock")
	}
}
