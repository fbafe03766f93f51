package dom_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rowsummary/pkg/dom"
)

const shell = `<td colspan="9">
    <dl class="custom-definition-list">
    </dl>
</td>`

func TestElement_SetInnerHTMLParsesInContainerContext(t *testing.T) {
	el := dom.New("tr")
	if err := el.SetInnerHTML(shell); err != nil {
		t.Fatalf("set inner html: %v", err)
	}

	out, err := el.InnerHTML()
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), `<td colspan="9">`) {
		t.Fatalf("expected td to survive fragment parsing, got:\n%s", out)
	}
	if el.Tag() != "tr" {
		t.Fatalf("unexpected tag %q", el.Tag())
	}
}

func TestElement_SetChildHTMLReplacesListContents(t *testing.T) {
	el := dom.New("tr")
	if err := el.SetInnerHTML(shell); err != nil {
		t.Fatalf("set inner html: %v", err)
	}

	if err := el.SetChildHTML(".custom-definition-list", "<dt>First</dt><dd>1</dd>"); err != nil {
		t.Fatalf("first fill: %v", err)
	}
	if err := el.SetChildHTML(".custom-definition-list", "<dt>Second</dt><dd>2</dd>"); err != nil {
		t.Fatalf("second fill: %v", err)
	}

	if diff := cmp.Diff([]string{"Second"}, el.Texts("dt")); diff != "" {
		t.Fatalf("terms mismatch (-want +got):\n%s", diff)
	}
	inner, err := el.ChildHTML(".custom-definition-list")
	if err != nil {
		t.Fatalf("child html: %v", err)
	}
	if inner != "<dt>Second</dt><dd>2</dd>" {
		t.Fatalf("unexpected list contents %q", inner)
	}
}

func TestElement_SetInnerHTMLDiscardsPreviousContent(t *testing.T) {
	el := dom.New("div")
	if err := el.SetInnerHTML(`<p id="old">old</p>`); err != nil {
		t.Fatalf("set inner html: %v", err)
	}
	if err := el.SetInnerHTML(`<p id="new">new</p>`); err != nil {
		t.Fatalf("set inner html: %v", err)
	}

	if _, err := el.ChildHTML("#old"); !errors.Is(err, dom.ErrNoMatch) {
		t.Fatalf("expected old node to be gone, got %v", err)
	}
	if diff := cmp.Diff([]string{"new"}, el.Texts("#new")); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestElement_SetChildHTMLNoMatch(t *testing.T) {
	el := dom.New("tr")
	err := el.SetChildHTML(".missing", "<dt>x</dt>")
	if !errors.Is(err, dom.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestElement_TextIsEscapedOnRender(t *testing.T) {
	el := dom.New("dl")
	if err := el.SetInnerHTML("<dd>a &lt;b&gt; &amp; c</dd>"); err != nil {
		t.Fatalf("set inner html: %v", err)
	}

	if diff := cmp.Diff([]string{"a <b> & c"}, el.Texts("dd")); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
	out, _ := el.InnerHTML()
	if !strings.Contains(out, "a &lt;b&gt; &amp; c") {
		t.Fatalf("expected escaped text on render, got %q", out)
	}
}

func TestElement_SanitizerStripsUnexpectedMarkup(t *testing.T) {
	el := dom.New("tr", dom.WithSanitizer(dom.DefinitionListPolicy()))
	err := el.SetInnerHTML(`<td colspan="9" onclick="steal()"><dl class="custom-definition-list"><script>alert(1)</script><dt class="custom-term">Name</dt></dl></td>`)
	if err != nil {
		t.Fatalf("set inner html: %v", err)
	}

	out, err := el.InnerHTML()
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	for _, banned := range []string{"onclick", "<script", "alert(1)"} {
		if strings.Contains(out, banned) {
			t.Fatalf("expected %q to be stripped, got:\n%s", banned, out)
		}
	}
	if diff := cmp.Diff([]string{"Name"}, el.Texts(".custom-term")); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out, `colspan="9"`) {
		t.Fatalf("expected colspan to be kept, got:\n%s", out)
	}
}
