package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kitstream/pathguard/internal/logging"
)

func TestCheckPathCmdSuccess(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "uploads"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var buf bytes.Buffer
	c := NewCheckPathCmd(logging.Default())
	c.SetOut(&buf)
	c.SetArgs([]string{"--base", base, "uploads/report.pdf"})

	if err := c.Execute(); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}

	wantBase, err := filepath.EvalSymlinks(base)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	want := filepath.Join(wantBase, "uploads", "report.pdf")
	got := strings.TrimSpace(buf.String())
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCheckPathCmdTraversalRejected(t *testing.T) {
	base := t.TempDir()

	c := NewCheckPathCmd(logging.Default())
	c.SetArgs([]string{"--base", base, "../../../etc/passwd"})

	if err := c.Execute(); err == nil {
		t.Fatal("expected error for path traversal")
	}
}

func TestCheckPathCmdRequiresExactlyOneArg(t *testing.T) {
	c := NewCheckPathCmd(logging.Default())
	c.SetArgs([]string{})

	if err := c.Execute(); err == nil {
		t.Fatal("expected error for missing PATH argument")
	}
}

func TestCheckNameCmdSuccess(t *testing.T) {
	var buf bytes.Buffer
	c := NewCheckNameCmd(logging.Default())
	c.SetOut(&buf)
	c.SetArgs([]string{"my-project"})

	if err := c.Execute(); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "my-project" {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestCheckNameCmdReservedRejected(t *testing.T) {
	c := NewCheckNameCmd(logging.Default())
	c.SetArgs([]string{"CON"})

	if err := c.Execute(); err == nil {
		t.Fatal("expected error for reserved name")
	}
}

func TestCheckFileNameCmdSuccess(t *testing.T) {
	var buf bytes.Buffer
	c := NewCheckFileNameCmd(logging.Default())
	c.SetOut(&buf)
	c.SetArgs([]string{"report.pdf"})

	if err := c.Execute(); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "report.pdf" {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestCheckFileNameCmdSeparatorRejected(t *testing.T) {
	c := NewCheckFileNameCmd(logging.Default())
	c.SetArgs([]string{"a/b"})

	if err := c.Execute(); err == nil {
		t.Fatal("expected error for embedded separator")
	}
}

func TestCheckCmdHasThreeSubcommands(t *testing.T) {
	c := NewCheckCmd(logging.Default())
	if len(c.Commands()) != 3 {
		t.Fatalf("expected 3 subcommands, got %d", len(c.Commands()))
	}
}
