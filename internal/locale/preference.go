package locale

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PreferenceDir is where terminal clients keep the chosen locale.
func PreferenceDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "portfolio"), nil
}

// LoadPreference returns the stored locale, or "" when none was saved.
func LoadPreference(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, StorageKey))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SavePreference persists loc under dir.
func SavePreference(dir string, loc Locale) error {
	if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create preference dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, StorageKey), []byte(string(loc)+"\n"), 0o644); err != nil {
		return fmt.Errorf("save locale preference: %w", err)
	}
	return nil
}
