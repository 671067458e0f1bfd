package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk directory checked before the embedded copies.
var Dir = "prefabs"

// Load reads a prefab from Dir when present, falling back to the embedded
// file. Absolute paths are read from disk only.
func Load(name string) ([]byte, error) {
	if filepath.IsAbs(name) {
		return os.ReadFile(name)
	}
	if data, err := os.ReadFile(DiskPath(name)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(cleanPrefabPath(name))
}

// DiskPath is the file Load tries first for name.
func DiskPath(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(Dir, filepath.FromSlash(cleanPrefabPath(name)))
}

// ModTime reports when the on-disk copy of name last changed. ok is false
// when only the embedded copy exists.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(DiskPath(name))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}
