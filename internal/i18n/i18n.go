package i18n

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark-assistant-go/internal/config"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Localizer manages internationalization
type Localizer struct {
	bundle          *i18n.Bundle
	defaultLanguage string
	localizers      map[string]*i18n.Localizer
}

// NewLocalizer creates a new localizer
func NewLocalizer(cfg *config.I18nConfig) (*Localizer, error) {
	bundle := i18n.NewBundle(language.Turkish)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, lang := range cfg.Languages {
		path := filepath.Join(cfg.Directory, lang+".json")
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return nil, fmt.Errorf("failed to load language file %s: %w", path, err)
		}
	}

	localizers := make(map[string]*i18n.Localizer)
	for _, lang := range cfg.Languages {
		localizers[lang] = i18n.NewLocalizer(bundle, lang)
	}

	return &Localizer{
		bundle:          bundle,
		defaultLanguage: cfg.DefaultLanguage,
		localizers:      localizers,
	}, nil
}

// Get returns the localized message for the default language
func (l *Localizer) Get(messageID string, data map[string]interface{}) string {
	return l.GetLang(l.defaultLanguage, messageID, data)
}

// GetLang returns the localized message for the given language
func (l *Localizer) GetLang(lang, messageID string, data map[string]interface{}) string {
	localizer, exists := l.localizers[lang]
	if !exists {
		localizer = l.localizers[l.defaultLanguage]
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID // Fallback to message ID
	}

	return msg
}

// Message IDs
const (
	MsgEmptyMessage    = "empty_message"
	MsgJarvisEnabled   = "jarvis_enabled"
	MsgJarvisDisabled  = "jarvis_disabled"
	MsgTimeFormat      = "time_format"
	MsgCurrencyFormat  = "currency_format"
	MsgCurrencyUnavail = "currency_unavailable"
	MsgWikiNotFound    = "wiki_not_found"
	MsgSearchHeader    = "search_header"
	MsgSearchNoResults = "search_no_results"
	MsgSearchFailed    = "search_failed"
	MsgAIUnavailable   = "ai_unavailable"
	MsgMissingAPIKey   = "missing_api_key"
	MsgSystemPersona   = "system_persona"
	MsgJarvisDirective = "jarvis_directive"
)
