package browser

import (
	"strings"
	"testing"
)

func TestJSLiteralQuotesSelectors(t *testing.T) {
	got := jsLiteral(`li[data-action="X"]`)
	want := `"li[data-action=\"X\"]"`
	if got != want {
		t.Errorf("jsLiteral() = %s, want %s", got, want)
	}
}

func TestFrameHTMLScriptTopDocument(t *testing.T) {
	script := frameHTMLScript(nil, "#table-rcla")
	if !strings.Contains(script, "__docAt([])") {
		t.Errorf("nil path should address the top document, got script:\n%s", script)
	}
}

func TestLocatorString(t *testing.T) {
	tests := []struct {
		loc  Locator
		want string
	}{
		{Locator{CSS: ".tile"}, ".tile"},
		{Locator{Text: "Registro"}, `text "Registro"`},
		{Locator{CSS: ".btn", Text: "Registro"}, `.btn with text "Registro"`},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
