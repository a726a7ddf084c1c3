package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"render", "check", "pins", "inspect", "graph", "serve", "export", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"check"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("check on reference board: %v", err)
	}
}

func TestCheckCommand_Faulty(t *testing.T) {
	bad := strings.Replace(string(board.ReferenceTOML()), `package_pins = 176`, `package_pins = 177`, 1)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"check", path})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	if err == nil {
		t.Fatal("expected fault")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeMissingPinDefinition {
		t.Errorf("code = %q, want %q", got, errors.ErrCodeMissingPinDefinition)
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", errors.New(errors.ErrCodeDuplicatePhysicalPin, "physical pin %d defined twice", 7), "physical pin 7 defined twice"},
		{"coded shows code", errors.New(errors.ErrCodeDuplicatePhysicalPin, "x"), string(errors.ErrCodeDuplicatePhysicalPin)},
		{"plain", io.ErrUnexpectedEOF, "unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ReportError(&buf, tt.err)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("ReportError() = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}
