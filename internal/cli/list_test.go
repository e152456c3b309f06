package cli

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"runtool/internal/tools"
)

func TestPrintToolListing(t *testing.T) {
	names := tools.BuiltinRegistry().Names()

	var buf bytes.Buffer
	printToolListing(&buf, names)
	out := buf.String()

	if !strings.HasPrefix(out, "usage: run <tool> [args...]\n") {
		t.Fatalf("listing missing usage line:\n%s", out)
	}
	if !strings.Contains(out, "pre-configured tools:") {
		t.Fatalf("listing missing header:\n%s", out)
	}
	for _, name := range names {
		if !strings.Contains(out, "{"+name+"}") {
			t.Fatalf("listing missing %q:\n%s", name, out)
		}
	}
}

// The listing is documented as parsable with
// `grep '{' | grep -oE '[0-9a-z.-]+'`; replay that pipeline and check it
// yields exactly the registered names.
func TestToolListingSurvivesGrepPipeline(t *testing.T) {
	names := tools.BuiltinRegistry().Names()

	var buf bytes.Buffer
	printToolListing(&buf, names)

	nameRE := regexp.MustCompile(`[0-9a-z.-]+`)
	var extracted []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.Contains(line, "{") {
			continue
		}
		extracted = append(extracted, nameRE.FindAllString(line, -1)...)
	}

	if len(extracted) != len(names) {
		t.Fatalf("extracted %d names, want %d: %v", len(extracted), len(names), extracted)
	}
	for i, name := range names {
		if extracted[i] != name {
			t.Fatalf("extracted[%d] = %q, want %q", i, extracted[i], name)
		}
	}
}

func setEnvSandbox(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	state := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("RUNTOOL_STATE_DIR", state)
	t.Setenv("TOOL_INSTALLER_BIN_DIR", t.TempDir())
	t.Setenv("TOOL_INSTALLER_PACKAGE_DIR", t.TempDir())
	t.Setenv("TOOL_INSTALLER_GIT_PROJECT_DIR", t.TempDir())
}

func TestListCommand(t *testing.T) {
	setEnvSandbox(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"list"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	for _, name := range []string{"gdu", "fzf", "theme.sh"} {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("list output missing %q:\n%s", name, out.String())
		}
	}
}

func TestListCommandJSON(t *testing.T) {
	setEnvSandbox(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"list", "--json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	defer func() { outputJSON = false }()

	var listed []listedTool
	if err := json.Unmarshal(out.Bytes(), &listed); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out.String())
	}
	if len(listed) != tools.BuiltinRegistry().Len() {
		t.Fatalf("expected %d tools, got %d", tools.BuiltinRegistry().Len(), len(listed))
	}
	for _, row := range listed {
		if row.Installed {
			t.Fatalf("expected nothing installed in a fresh sandbox, got %+v", row)
		}
	}
}
