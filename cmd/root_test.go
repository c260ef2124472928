// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/manager"
)

// isolate points HOME and the config dirs at temp dirs, clears the TODO_*
// environment and changes into an empty working directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, k := range []string{
		"TODO_DATA_FILE", "TODO_LOG_DIR", "TODO_UI", "TODO_CAPITALIZE",
		"TODO_NO_COLOR", "NO_COLOR", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT",
		"TODO_LOG_TIMESTAMPS", "TODO_LOG_CALLER",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(work)
	return work
}

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = Run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

// dataArgs returns the -data flag for a fresh data file in the work dir.
func dataArgs(work string) []string {
	return []string{"-data", filepath.Join(work, "db", "to_do_list.csv")}
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"shows help with --help flag", []string{"--help"}, "Commands:"},
		{"shows help with -h flag", []string{"-h"}, "Commands:"},
		{"shows help with help command", []string{"help"}, "Global Options:"},
		{"shows version with --version flag", []string{"--version"}, "todo version dev"},
		{"shows version with -v flag", []string{"-v"}, "todo version dev"},
		{"shows version with version command", []string{"version"}, "todo version dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			out, _, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}

	t.Run("unknown command returns error", func(t *testing.T) {
		isolate(t)
		_, errOut, err := run(t, "", "frobnicate")
		if err == nil || !strings.Contains(err.Error(), "unknown command: frobnicate") {
			t.Errorf("expected unknown command error, got %v", err)
		}
		if !strings.Contains(errOut, "Usage:") {
			t.Errorf("usage not printed to stderr: %q", errOut)
		}
	})

	t.Run("unknown flag returns error", func(t *testing.T) {
		isolate(t)
		if _, _, err := run(t, "", "--bogus"); err == nil {
			t.Error("expected error for unknown flag")
		}
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		isolate(t)
		_, _, err := run(t, "", "-ui", "gui", "ls")
		if err == nil || !strings.Contains(err.Error(), "invalid config") {
			t.Errorf("expected invalid config error, got %v", err)
		}
	})
}

func TestInitCommand(t *testing.T) {
	work := isolate(t)
	path := filepath.Join(work, "db", "to_do_list.csv")

	out, _, err := run(t, "", append(dataArgs(work), "init")...)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if want := "Data file: " + path + "\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "id,name,finished,created_at\r\n" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestTaskCommands(t *testing.T) {
	work := isolate(t)
	data := dataArgs(work)
	cli := func(args ...string) (string, error) {
		t.Helper()
		out, _, err := run(t, "", append(append([]string{}, data...), args...)...)
		return out, err
	}

	out, err := cli("ls")
	if err != nil || out != "No tasks found.\n" {
		t.Fatalf("empty ls: %q, %v", out, err)
	}

	out, err = cli("add", "buy", "MILK")
	if err != nil || out != "Added #1: Buy milk\n" {
		t.Fatalf("add: %q, %v", out, err)
	}
	if _, err := cli("add", "walk dog"); err != nil {
		t.Fatal(err)
	}

	out, err = cli("update", "-finished", "y", "2")
	if err != nil || out != "Updated #2: Walk dog [Done]\n" {
		t.Fatalf("update: %q, %v", out, err)
	}

	t.Run("ls filters by status", func(t *testing.T) {
		out, err := cli("ls", "-status", "done")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out, "[✓] #2: Walk dog (Created: ") || strings.Contains(out, "#1") {
			t.Errorf("done listing: %q", out)
		}

		out, err = cli("ls", "-status", "pending")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out, "[✗] #1: Buy milk (Created: ") || strings.Contains(out, "#2") {
			t.Errorf("pending listing: %q", out)
		}

		out, _ = cli("ls")
		if strings.Count(out, "\n") != 2 {
			t.Errorf("full listing: %q", out)
		}

		if _, err := cli("ls", "-status", "someday"); err == nil {
			t.Error("expected error for invalid status")
		}
	})

	t.Run("update rename", func(t *testing.T) {
		out, err := cli("update", "-name", "buy OAT milk", "1")
		if err != nil || out != "Updated #1: Buy oat milk [Pending]\n" {
			t.Errorf("rename: %q, %v", out, err)
		}
	})

	t.Run("update errors", func(t *testing.T) {
		_, err := cli("update", "-finished", "Y", "99")
		if !errors.Is(err, manager.ErrNotFound) {
			t.Errorf("missing id: got %v, want ErrNotFound", err)
		}
		if _, err := cli("update", "1"); err == nil {
			t.Error("expected error with nothing to update")
		}
		if _, err := cli("update", "-finished", "maybe", "1"); err == nil {
			t.Error("expected error for bad -finished value")
		}
		if _, err := cli("update", "-name", "  ", "1"); !errors.Is(err, manager.ErrEmptyName) {
			t.Errorf("blank name: got %v, want ErrEmptyName", err)
		}
		if _, err := cli("update", "-name", "x", "abc"); err == nil {
			t.Error("expected error for non-numeric id")
		}
	})

	t.Run("add requires a name", func(t *testing.T) {
		if _, err := cli("add"); !errors.Is(err, manager.ErrEmptyName) {
			t.Errorf("got %v, want ErrEmptyName", err)
		}
	})

	t.Run("rm", func(t *testing.T) {
		out, err := cli("rm", "1")
		if err != nil || out != "Deleted #1\n" {
			t.Fatalf("rm: %q, %v", out, err)
		}
		if _, err := cli("rm", "1"); !errors.Is(err, manager.ErrNotFound) {
			t.Errorf("second rm: got %v, want ErrNotFound", err)
		}
		if _, err := cli("rm"); err == nil {
			t.Error("expected usage error")
		}
	})
}

func TestCapitalizeFlag(t *testing.T) {
	work := isolate(t)
	args := append(dataArgs(work), "-capitalize=false", "add", "keep CASE")
	out, _, err := run(t, "", args...)
	if err != nil || out != "Added #1: keep CASE\n" {
		t.Errorf("got %q, %v", out, err)
	}
}

func TestShellCommand(t *testing.T) {
	work := isolate(t)

	out, _, err := run(t, "3\nbuy milk\n2\n6\n", dataArgs(work)...)
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	for _, want := range []string{
		"--- Personal TO-DO App ---",
		"-> Task '#1: Buy milk' added successfully.",
		"[✗] #1: Buy milk (Created: ",
		"Exiting application. Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// The explicit subcommand behaves the same and ends at EOF.
	out, _, err = run(t, "2\n", append(dataArgs(work), "shell")...)
	if err != nil {
		t.Fatalf("shell subcommand: %v", err)
	}
	if !strings.Contains(out, "#1: Buy milk") {
		t.Errorf("task not persisted:\n%s", out)
	}
}

func TestTUIRequiresTTY(t *testing.T) {
	work := isolate(t)
	if _, _, err := run(t, "", append(dataArgs(work), "tui")...); err == nil {
		t.Error("expected error without a terminal")
	}
}

func TestDebugLogging(t *testing.T) {
	work := isolate(t)
	args := append(dataArgs(work), "-log-level", "debug", "add", "A")
	_, errOut, err := run(t, "", args...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, "task added") {
		t.Errorf("expected debug log on stderr, got %q", errOut)
	}
}

func TestDoctorCommand(t *testing.T) {
	t.Run("missing data file is a warning", func(t *testing.T) {
		work := isolate(t)
		out, _, err := run(t, "", append(dataArgs(work), "doctor")...)
		if err != nil {
			t.Fatalf("doctor: %v\n%s", err, out)
		}
		for _, want := range []string{
			"Config:",
			"(flag)",
			"Not found (will be created on first use)",
			"Log directory: (disabled)",
			"✅ All checks passed!",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		if _, err := os.Stat(filepath.Join(work, "db", "to_do_list.csv")); !os.IsNotExist(err) {
			t.Errorf("doctor must not create the data file: %v", err)
		}
	})

	t.Run("valid data file", func(t *testing.T) {
		work := isolate(t)
		if _, _, err := run(t, "", append(dataArgs(work), "add", "A")...); err != nil {
			t.Fatal(err)
		}
		out, _, err := run(t, "", append(dataArgs(work), "doctor", "-v")...)
		if err != nil {
			t.Fatalf("doctor: %v\n%s", err, out)
		}
		if !strings.Contains(out, "✅ Valid (1 rows)") || !strings.Contains(out, "[Pending] #1: A") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("bad rows are reported", func(t *testing.T) {
		work := isolate(t)
		path := filepath.Join(work, "broken.csv")
		content := "id,name,finished,created_at\r\n" +
			"abc,A,N,2024-01-01 10:00:00\r\n" +
			"2,B,maybe,2024-01-01 10:00:00\r\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		out, _, err := run(t, "", "doctor", "broken.csv")
		if err == nil || err.Error() != "doctor checks failed" {
			t.Fatalf("expected doctor failure, got %v", err)
		}
		for _, want := range []string{"Data file: " + path, "rows[0].id", "rows[1].finished"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("invalid config is reported, not fatal", func(t *testing.T) {
		work := isolate(t)
		out, _, err := run(t, "", append(dataArgs(work), "-log-level", "loud", "doctor")...)
		if err == nil {
			t.Fatal("expected doctor failure")
		}
		if !strings.Contains(out, "log_level") || !strings.Contains(out, "Data file:") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("log runs are listed", func(t *testing.T) {
		work := isolate(t)
		args := append(dataArgs(work), "-log-dir", "logs")
		if _, _, err := run(t, "", append(args, "add", "A")...); err != nil {
			t.Fatal(err)
		}
		out, _, err := run(t, "", append(args, "doctor")...)
		if err != nil {
			t.Fatalf("doctor: %v\n%s", err, out)
		}
		if !strings.Contains(out, "✅ 1 run(s), latest ") {
			t.Errorf("run log not found:\n%s", out)
		}
	})
}

func TestLogOptions(t *testing.T) {
	var stderr bytes.Buffer

	t.Run("empty config keeps the defaults", func(t *testing.T) {
		got := logOptions(&config.Config{WorkDir: "/work"}, &stderr)
		def := logging.DefaultOptions()
		if got.Level != def.Level || got.Format != def.Format {
			t.Errorf("got level=%q format=%q, want %q %q", got.Level, got.Format, def.Level, def.Format)
		}
		if got.Output != &stderr || got.WorkDir != "/work" {
			t.Errorf("unexpected options: %+v", got)
		}
	})

	t.Run("config overrides", func(t *testing.T) {
		cfg := &config.Config{LogLevel: "debug", LogFormat: "json", LogCaller: true, LogDir: "logs"}
		got := logOptions(cfg, nil)
		if got.Level != "debug" || got.Format != "json" || !got.Caller || got.Dir != "logs" {
			t.Errorf("unexpected options: %+v", got)
		}
		if got.Output != os.Stderr {
			t.Errorf("nil stderr should keep the default output")
		}
	})
}
