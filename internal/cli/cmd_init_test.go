package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Init_Writes_Starter_Config(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	out := r.MustRun("init")
	if !strings.Contains(out, "wrote") {
		t.Fatalf("init output = %q", out)
	}

	path := filepath.Join(r.Dir, ".config", "goldfish", "config.json")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "goldfish configuration") {
		t.Fatalf("unexpected starter content:\n%s", data)
	}

	// The starter file must load cleanly.
	r.MustRun("print-config")
}

func Test_Init_Refuses_To_Overwrite(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	r.MustRun("init")

	_, stderr, code := r.Run("init")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}

	if !strings.Contains(stderr, "already exists") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func Test_PrintConfig_Reports_Loaded_File(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	cfgDir := filepath.Join(r.Dir, ".config", "goldfish")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(cfgPath, []byte(`{"retain": 5}`), 0o600); err != nil {
		t.Fatal(err)
	}

	out := r.MustRun("print-config")

	if !strings.Contains(out, "retain     5") {
		t.Fatalf("print-config = %q", out)
	}

	if !strings.Contains(out, "(loaded)") {
		t.Fatalf("print-config should mark the file loaded: %q", out)
	}
}

func Test_PrintConfig_Marks_Missing_Default_File(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	out := r.MustRun("print-config")
	if !strings.Contains(out, "(not found)") {
		t.Fatalf("print-config = %q", out)
	}
}

func Test_Flag_Overrides_Beat_Config_File(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	cfgDir := filepath.Join(r.Dir, ".config", "goldfish")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(cfgPath, []byte(`{"retain": 5}`), 0o600); err != nil {
		t.Fatal(err)
	}

	out := r.MustRun("--retain", "2", "print-config")
	if !strings.Contains(out, "retain     2") {
		t.Fatalf("print-config = %q, want flag override", out)
	}
}
