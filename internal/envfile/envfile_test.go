package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestSetAppendsMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "POSTGRES_PASSWORD=password\n# local overrides\n")

	if err := Set(path, "AUTH_TYPE", "disabled"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got := readFile(t, path)
	want := "POSTGRES_PASSWORD=password\n# local overrides\nAUTH_TYPE=disabled\n"
	if got != want {
		t.Errorf("Set() result = %q, want %q", got, want)
	}

	if n := strings.Count(got, "AUTH_TYPE="); n != 1 {
		t.Errorf("expected exactly 1 AUTH_TYPE line, got %d", n)
	}
}

func TestSetRewritesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "A=1\nAUTH_TYPE=google_oauth\n\n# comment\nB=2\n")

	if err := Set(path, "AUTH_TYPE", "disabled"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got := readFile(t, path)
	want := "A=1\nAUTH_TYPE=disabled\n\n# comment\nB=2\n"
	if got != want {
		t.Errorf("Set() result = %q, want %q", got, want)
	}
}

func TestSetIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "A=1\nB=2\n")

	if err := Set(path, "AUTH_TYPE", "disabled"); err != nil {
		t.Fatalf("first Set() error = %v", err)
	}
	first := readFile(t, path)

	if err := Set(path, "AUTH_TYPE", "disabled"); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}
	second := readFile(t, path)

	if first != second {
		t.Errorf("Set() not idempotent:\nfirst  = %q\nsecond = %q", first, second)
	}
}

func TestSetDoesNotTouchLongerKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "AUTH_TYPE_FALLBACK=basic\n")

	if err := Set(path, "AUTH_TYPE", "disabled"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got := readFile(t, path)
	want := "AUTH_TYPE_FALLBACK=basic\nAUTH_TYPE=disabled\n"
	if got != want {
		t.Errorf("Set() result = %q, want %q", got, want)
	}
}

func TestSetCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	if err := Set(path, "AUTH_TYPE", "disabled"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if got, want := readFile(t, path), "AUTH_TYPE=disabled\n"; got != want {
		t.Errorf("Set() result = %q, want %q", got, want)
	}
}

func TestSetRewritesDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "AUTH_TYPE=a\nX=1\nAUTH_TYPE=b\n")

	if err := Set(path, "AUTH_TYPE", "disabled"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got := readFile(t, path)
	want := "AUTH_TYPE=disabled\nX=1\nAUTH_TYPE=disabled\n"
	if got != want {
		t.Errorf("Set() result = %q, want %q", got, want)
	}
}

func TestCopyFromTemplate(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "env.dev.template")
	target := filepath.Join(dir, ".env")
	writeFile(t, template, "AUTH_TYPE=google_oauth\nLOG_LEVEL=info\n")

	copied, err := CopyFromTemplate(template, target)
	if err != nil {
		t.Fatalf("CopyFromTemplate() error = %v", err)
	}
	if !copied {
		t.Error("expected a copy on first run")
	}
	if got, want := readFile(t, target), readFile(t, template); got != want {
		t.Errorf("target = %q, want template content %q", got, want)
	}
}

func TestCopyFromTemplateKeepsExistingTarget(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "env.dev.template")
	target := filepath.Join(dir, ".env")
	writeFile(t, template, "AUTH_TYPE=google_oauth\n")
	writeFile(t, target, "AUTH_TYPE=disabled\nCUSTOM=1\n")

	copied, err := CopyFromTemplate(template, target)
	if err != nil {
		t.Fatalf("CopyFromTemplate() error = %v", err)
	}
	if copied {
		t.Error("existing target must not be overwritten")
	}
	if got := readFile(t, target); got != "AUTH_TYPE=disabled\nCUSTOM=1\n" {
		t.Errorf("target was modified: %q", got)
	}
}

func TestCopyFromTemplateMissingTemplate(t *testing.T) {
	dir := t.TempDir()

	copied, err := CopyFromTemplate(filepath.Join(dir, "nope.template"), filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatalf("CopyFromTemplate() error = %v", err)
	}
	if copied {
		t.Error("missing template must be a no-op")
	}
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "# dev stack settings\nAUTH_TYPE=disabled\nPOSTGRES_USER=postgres\n\n")

	env, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got := env["AUTH_TYPE"]; got != "disabled" {
		t.Errorf("AUTH_TYPE = %q, want %q", got, "disabled")
	}
	if got := env["POSTGRES_USER"]; got != "postgres" {
		t.Errorf("POSTGRES_USER = %q, want %q", got, "postgres")
	}
	if len(env) != 2 {
		t.Errorf("expected 2 entries, got %d", len(env))
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), ".env")); err == nil {
		t.Error("Read() on a missing file should fail")
	}
}
