package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveCompanion picks the binary for a tool that ships alongside another,
// such as ffprobe next to ffmpeg.
//
// An explicit configured command wins. Otherwise a binary named name that
// sits in the same directory as the resolved primary is preferred, so a
// custom ffmpeg build is paired with its own ffprobe. PATH lookup is the
// final fallback; the bare name is returned when nothing resolves.
func ResolveCompanion(primary, name, configured string) string {
	if configured = strings.TrimSpace(configured); configured != "" && configured != name {
		return configured
	}

	if primary = strings.TrimSpace(primary); primary != "" {
		if resolved, err := exec.LookPath(primary); err == nil {
			candidate := filepath.Join(filepath.Dir(resolved), executableName(name))
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				return candidate
			}
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return name
}

func executableName(name string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
		return name + ".exe"
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
