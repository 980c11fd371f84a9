// Package envfile manipulates dotenv-style KEY=VALUE files for the dev stack.
//
// Reads go through gotenv so callers get a typed map. The forced-key write
// path is a line-level rewrite instead: it must preserve comments, blank
// lines, and the order of unrelated entries, which a map round-trip would
// destroy.
package envfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/subosito/gotenv"
)

// Read parses the env file into a key/value map.
func Read(path string) (gotenv.Env, error) {
	env, err := gotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return env, nil
}

// CopyFromTemplate copies template to target if the target does not exist yet.
// A missing template is not an error; first-run convenience only.
// Returns true when a copy happened.
func CopyFromTemplate(template, target string) (bool, error) {
	if _, err := os.Stat(target); err == nil {
		return false, nil
	}

	data, err := os.ReadFile(template)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read template %s: %w", template, err)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", target, err)
	}

	return true, nil
}

// Set forces key to value in the file at path. Lines starting with "key="
// are rewritten in place; everything else is left untouched, in order.
// If no line matches, a single "key=value" line is appended. Creates the
// file when missing. Idempotent.
func Set(path, key, value string) error {
	entry := key + "=" + value

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		data = nil
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}

	prefix := key + "="
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = entry
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}

	out := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write env file %s: %w", path, err)
	}

	return nil
}
