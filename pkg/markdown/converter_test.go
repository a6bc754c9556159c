package markdown

import (
	"strings"
	"testing"
)

func TestToTelegramHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "merhaba", "merhaba"},
		{"bold", "**önemli**", "<b>önemli</b>"},
		{"italic", "*vurgu*", "<i>vurgu</i>"},
		{"inline code", "`go test`", "<code>go test</code>"},
		{"list", "- bir\n- iki", "• bir\n\n• iki"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToTelegramHTML(tt.in); got != tt.want {
				t.Errorf("ToTelegramHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToTelegramHTMLStripsUnsupportedTags(t *testing.T) {
	got := ToTelegramHTML("# Başlık\n\n## Alt başlık\n\nmetin")
	if strings.Contains(got, "<h") || strings.Contains(got, "</h") {
		t.Errorf("heading tags should be stripped, got %q", got)
	}
	if !strings.Contains(got, "Başlık") || !strings.Contains(got, "Alt başlık") {
		t.Errorf("heading text should be kept, got %q", got)
	}
}

func TestToTelegramHTMLKeepsLinks(t *testing.T) {
	got := ToTelegramHTML("[kaynak](https://example.com)")
	if !strings.Contains(got, `<a href="https://example.com"`) {
		t.Errorf("links should survive, got %q", got)
	}
}
