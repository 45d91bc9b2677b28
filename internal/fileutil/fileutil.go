// Package fileutil names the scratch files behind an output and publishes
// finished outputs atomically.
package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LockDirName is the directory under os.TempDir holding output locks.
const LockDirName = "vidio-locks"

// TempSibling returns a hidden path next to path that keeps its extension so
// ffmpeg still infers the container: out.mp4 becomes .out.vidio-<uuid>.mp4.
func TempSibling(path string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf(".%s.vidio-%s%s", stem, uuid.NewString(), ext))
}

// LockPath returns the lock file guarding output. It lives under the system
// temp directory, keyed by the absolute output path, so it never collides
// with files next to the output. Lock files are left in place after use.
func LockPath(output string) (string, error) {
	abs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), LockDirName, hex.EncodeToString(sum[:12])+".lock"), nil
}

// Publish moves temp over dst. temp must be a TempSibling of dst, so the
// rename stays on one filesystem and is atomic.
func Publish(temp, dst string) error {
	if err := os.Rename(temp, dst); err != nil {
		return fmt.Errorf("publish %s: %w", dst, err)
	}
	return nil
}
