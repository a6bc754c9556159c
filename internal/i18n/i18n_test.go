package i18n

import (
	"testing"

	"github.com/mark-assistant-go/internal/config"
)

func newTestLocalizer(t *testing.T) *Localizer {
	t.Helper()
	l, err := NewLocalizer(&config.I18nConfig{
		DefaultLanguage: "tr",
		Directory:       "../../configs/i18n",
		Languages:       []string{"tr", "en"},
	})
	if err != nil {
		t.Fatalf("NewLocalizer() error = %v", err)
	}
	return l
}

func TestGetDefaultLanguage(t *testing.T) {
	l := newTestLocalizer(t)

	if got := l.Get(MsgEmptyMessage, nil); got != "Mesaj boş, Patron." {
		t.Errorf("Get(%q) = %q", MsgEmptyMessage, got)
	}
}

func TestGetLang(t *testing.T) {
	l := newTestLocalizer(t)

	if got := l.GetLang("en", MsgJarvisEnabled, nil); got != "Jarvis mode enabled." {
		t.Errorf("GetLang(en, %q) = %q", MsgJarvisEnabled, got)
	}
	// Unknown language falls back to the default
	if got := l.GetLang("de", MsgJarvisEnabled, nil); got != "Jarvis modu açıldı." {
		t.Errorf("GetLang(de, %q) = %q", MsgJarvisEnabled, got)
	}
}

func TestGetWithTemplateData(t *testing.T) {
	l := newTestLocalizer(t)

	got := l.Get(MsgCurrencyFormat, map[string]interface{}{
		"USD": "35.31",
		"EUR": "36.53",
	})
	want := "Güncel döviz: 1 USD = 35.31 TL | 1 EUR = 36.53 TL"
	if got != want {
		t.Errorf("Get(%q) = %q, want %q", MsgCurrencyFormat, got, want)
	}
}

func TestGetUnknownIDFallsBackToID(t *testing.T) {
	l := newTestLocalizer(t)

	if got := l.Get("no_such_message", nil); got != "no_such_message" {
		t.Errorf("Get(no_such_message) = %q", got)
	}
}
