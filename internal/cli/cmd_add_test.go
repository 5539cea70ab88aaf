package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mkdirHome(t *testing.T, r *CLI, name string) string {
	t.Helper()

	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}

	return path
}

func writeFileHome(t *testing.T, r *CLI, name string) string {
	t.Helper()

	path := filepath.Join(r.Dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func Test_Add_Then_List_Round_Trips(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	path := mkdirHome(t, r, "projects/alpha")

	r.MustRun("add", path)

	if out := r.MustRun("list"); out != "~/projects/alpha\n" {
		t.Fatalf("list = %q", out)
	}
}

func Test_Add_Missing_Path_Is_Silently_Dropped(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	stdout, stderr, code := r.Run("add", filepath.Join(r.Dir, "does-not-exist"))
	if code != 0 {
		t.Fatalf("exit = %d, want 0 (invalid entries are not errors)", code)
	}

	if stdout != "" || stderr != "" {
		t.Fatalf("expected silence, got stdout=%q stderr=%q", stdout, stderr)
	}

	if out := r.MustRun("list"); out != "" {
		t.Fatalf("dropped path leaked into the cache: %q", out)
	}
}

func Test_Add_Type_Filter_Gates_Entries(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	dir := mkdirHome(t, r, "somedir")
	file := writeFileHome(t, r, "somefile")

	r.MustRun("add", "--type", "file", dir)  // dropped
	r.MustRun("add", "--type", "file", file) // accepted
	r.MustRun("add", "--type", "dir", file)  // dropped

	if out := r.MustRun("list"); out != "~/somefile\n" {
		t.Fatalf("list = %q", out)
	}
}

func Test_Add_Symlink_Is_Canonicalized(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	mkdirHome(t, r, "real")

	link := filepath.Join(r.Dir, "alias")
	if err := os.Symlink(filepath.Join(r.Dir, "real"), link); err != nil {
		t.Fatal(err)
	}

	r.MustRun("add", link)

	if out := r.MustRun("list"); out != "~/real\n" {
		t.Fatalf("list = %q, want the symlink target", out)
	}
}

func Test_Add_Unknown_Type_Fails(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	_, stderr, code := r.Run("add", "--type", "socket", r.Dir)
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}

	if !strings.Contains(stderr, "invalid type filter") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func Test_Add_Without_Paths_Fails(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	_, stderr, code := r.Run("add")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}

	if !strings.Contains(stderr, "at least one path") {
		t.Fatalf("stderr = %q", stderr)
	}
}
