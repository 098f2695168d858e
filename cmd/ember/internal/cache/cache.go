// Package cache provides cache directory resolution and the render cache used
// by the ember CLI.
//
// Priority order: --cache-dir flag > EMBER_CACHE_DIR env > ~/.ember default.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/mod/semver"
)

var global struct {
	version    string
	rawVersion string
	cacheDir   string
}

// SetGlobal initializes the cache resolver with the CLI version.
// This should be called at startup from root.go.
func SetGlobal(version string) {
	global.rawVersion = strings.TrimSpace(version)
	global.version = NormalizeVersion(version)
}

// NormalizeVersion returns a clean release version, or empty if the version
// is not a valid release (e.g., dev builds, pseudo-versions from go install).
// Explicit prerelease tags (v0.2.0-rc1) are allowed.
//
// Examples:
//
//	"v0.1.0"                          -> "v0.1.0"
//	"0.1.0"                           -> "v0.1.0"
//	"ember-v0.1.0"                    -> "v0.1.0"
//	"v0.2.0-rc1"                      -> "v0.2.0-rc1"
//	"0.1.0-dev"                       -> ""
//	"v0.2.1-0.20260122153045-abc123"  -> ""
func NormalizeVersion(version string) string {
	version = strings.TrimPrefix(strings.TrimSpace(version), "ember-")
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if strings.HasSuffix(version, "-dev") || strings.Contains(version, "-0.") {
		return ""
	}
	// semver accepts "v1" and "v1.2" as shorthands; releases spell out all three.
	if !semver.IsValid(version) || semver.Canonical(version) != version {
		return ""
	}
	return version
}

// SetCacheDir sets an override for the cache directory.
// This is typically called when parsing the --cache-dir flag.
func SetCacheDir(dir string) {
	global.cacheDir = dir
}

// Root returns the cache root directory.
func Root() (string, error) {
	if global.cacheDir != "" {
		return global.cacheDir, nil
	}
	if envDir := os.Getenv("EMBER_CACHE_DIR"); envDir != "" {
		return envDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ember"), nil
}

// RenderDir returns the directory holding cached renders for this CLI version.
// Returns: <cache_root>/renders/<version>, with "dev" for non-release builds.
func RenderDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	version := global.version
	if version == "" {
		version = "dev"
	}
	return filepath.Join(root, "renders", version), nil
}

// Key hashes the inputs of a render into a cache key. Each part is
// length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func Key(parts ...[]byte) string {
	h := xxhash.New()
	var n [8]byte
	for _, p := range parts {
		l := uint64(len(p))
		for i := range n {
			n[i] = byte(l >> (8 * i))
		}
		h.Write(n[:])
		h.Write(p)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Lookup returns the cached render for key, if any.
func Lookup(key, ext string) ([]byte, bool) {
	dir, err := RenderDir()
	if err != nil {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(dir, key+ext))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Store writes a render into the cache. The file is written under a temporary
// name and renamed so that concurrent readers never see a partial render.
func Store(key, ext string, data []byte) error {
	dir, err := RenderDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, key+ext))
}

// Clean removes every cached render of every version.
func Clean() error {
	root, err := Root()
	if err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(root, "renders"))
}

// Version returns the normalized CLI version, or the raw one for dev builds.
func Version() string {
	if global.version != "" {
		return global.version
	}
	return global.rawVersion
}
