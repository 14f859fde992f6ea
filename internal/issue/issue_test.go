// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	if FileNotFoundId != 1 {
		t.Errorf("FileNotFoundId = %d, want 1", FileNotFoundId)
	}
	if PermissionDeniedId != Id(len(issues)) {
		t.Errorf("PermissionDeniedId = %d, want %d", PermissionDeniedId, len(issues))
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(UnknownFunctionId)
	if issue == nil {
		t.Fatal("Get(UnknownFunctionId) returned nil")
	}
	if !strings.Contains(string(issue.MarkdownMsg()), "typeset funcs") {
		t.Error("MarkdownMsg() should point at 'typeset funcs'")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()
	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	testIssue := &Issue{
		id:       FileNotFoundId,
		mdMsg:    "# Test",
		docLinks: []HttpLink{"https://example.com/docs"},
		extLinks: []HttpLink{"https://example.com/ext"},
	}
	rendered, err := testIssue.Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	for _, want := range []string{"See also", "(https://example.com/docs)", "(https://example.com/ext)"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() missing %q:\n%s", want, rendered)
		}
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()
	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(LayoutFailedId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("issues without links must not render a See also section")
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i, issue := range values {
		if issue.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), i+1)
		}
		if strings.TrimSpace(string(issue.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no message", issue.Id())
		}
		if issue.Title() == "" {
			t.Errorf("issue %d has no title", issue.Id())
		}
	}
}

func TestIssue_Title(t *testing.T) {
	t.Parallel()

	if got := Get(FileNotFoundId).Title(); got != "Document not found!" {
		t.Errorf("Title() = %q, want %q", got, "Document not found!")
	}
	if got := (&Issue{mdMsg: "no heading"}).Title(); got != "" {
		t.Errorf("Title() = %q, want empty", got)
	}
}

func TestAllIssuesRenderWithGlamour(t *testing.T) {
	for _, issue := range Values() {
		rendered, err := issue.Render("notty")
		if err != nil {
			t.Errorf("issue %d failed to render: %v", issue.Id(), err)
			continue
		}
		if strings.TrimSpace(rendered) == "" {
			t.Errorf("issue %d rendered to empty string", issue.Id())
		}
	}
}
