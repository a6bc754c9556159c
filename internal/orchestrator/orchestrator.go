package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mark-assistant-go/internal/config"
	"github.com/mark-assistant-go/internal/i18n"
	"github.com/mark-assistant-go/internal/intent"
	"github.com/mark-assistant-go/internal/middleware"
	"github.com/mark-assistant-go/internal/models"
	"github.com/mark-assistant-go/internal/services/ai"
	"github.com/mark-assistant-go/internal/services/cache"
	"github.com/mark-assistant-go/internal/services/currency"
	"github.com/mark-assistant-go/internal/session"
	"github.com/mark-assistant-go/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	searchResultCount = 3
	wikiSentences     = 2
)

// CurrencyProvider fetches daily exchange rates
type CurrencyProvider interface {
	FetchRates(ctx context.Context) (*currency.Rates, error)
}

// SearchProvider returns top result URLs for a query
type SearchProvider interface {
	Search(ctx context.Context, query string, count int, lang string) ([]string, error)
}

// WikiProvider returns a short article summary for a term
type WikiProvider interface {
	Summary(ctx context.Context, term string, sentences int) (string, error)
}

// Orchestrator routes a classified message to the right collaborator
// and assembles the reply. Collaborator failures never propagate; they
// degrade to fixed localized fallback sentences.
type Orchestrator struct {
	config    *config.Config
	store     *session.Store
	aiService ai.Service
	currency  CurrencyProvider
	search    SearchProvider
	wiki      WikiProvider
	cache     cache.Service
	localizer *i18n.Localizer
	metrics   *middleware.Metrics
	logger    *logrus.Logger
	location  *time.Location
}

// New creates a new orchestrator
func New(
	cfg *config.Config,
	store *session.Store,
	aiService ai.Service,
	currencyProvider CurrencyProvider,
	searchProvider SearchProvider,
	wikiProvider WikiProvider,
	cacheService cache.Service,
	localizer *i18n.Localizer,
	metrics *middleware.Metrics,
	logger *logrus.Logger,
) (*Orchestrator, error) {
	location, err := time.LoadLocation(cfg.Chat.Timezone)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		config:    cfg,
		store:     store,
		aiService: aiService,
		currency:  currencyProvider,
		search:    searchProvider,
		wiki:      wikiProvider,
		cache:     cacheService,
		localizer: localizer,
		metrics:   metrics,
		logger:    logger,
		location:  location,
	}, nil
}

// Handle processes one inbound message for userID and returns the reply
// text together with the classified intent
func (o *Orchestrator) Handle(ctx context.Context, userID, raw string) (string, intent.Intent) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return o.localizer.Get(i18n.MsgEmptyMessage, nil), intent.GeneralChat
	}

	// Bound memory and outbound payload size before anything else
	text := truncateRunes(trimmed, o.config.Chat.MaxUserLength)
	classified := intent.Classify(text)

	logger.WithUser(o.logger, userID).WithField("intent", classified.String()).Debug("Message classified")

	switch classified {
	case intent.ModeOn:
		o.store.SetMode(userID, true)
		return o.localizer.Get(i18n.MsgJarvisEnabled, nil), classified
	case intent.ModeOff:
		o.store.SetMode(userID, false)
		return o.localizer.Get(i18n.MsgJarvisDisabled, nil), classified
	case intent.TimeQuery:
		return o.timeContext(), classified
	case intent.CurrencyQuery:
		return o.currencyReply(ctx), classified
	case intent.EncyclopediaQuery:
		return o.wikiReply(ctx, text), classified
	case intent.SearchQuery, intent.LiveInfoQuery:
		// Live-info questions get sourced links instead of letting the
		// model guess at facts likely to be stale
		return o.searchReply(ctx, text), classified
	default:
		return o.chatReply(ctx, userID, text), classified
	}
}

// timeContext formats the current local time and date
func (o *Orchestrator) timeContext() string {
	now := time.Now().In(o.location)
	return o.localizer.Get(i18n.MsgTimeFormat, map[string]interface{}{
		"Time": now.Format("15:04"),
		"Date": now.Format("02.01.2006"),
	})
}

func (o *Orchestrator) currencyReply(ctx context.Context) string {
	if cached, found := o.cache.Get(ctx, "currency", "today"); found {
		o.metrics.RecordCacheHit("currency")
		return cached
	}

	start := time.Now()
	rates, err := o.currency.FetchRates(ctx)
	if err != nil {
		o.metrics.RecordProviderRequest("currency", "error", time.Since(start))
		o.logger.WithError(err).Warn("Currency fetch failed")
		return o.localizer.Get(i18n.MsgCurrencyUnavail, nil)
	}
	o.metrics.RecordProviderRequest("currency", "success", time.Since(start))

	reply := o.localizer.Get(i18n.MsgCurrencyFormat, map[string]interface{}{
		"USD": rates.USD,
		"EUR": rates.EUR,
	})
	if err := o.cache.Set(ctx, "currency", "today", reply); err != nil {
		o.logger.WithError(err).Warn("Failed to cache currency reply")
	}
	return reply
}

func (o *Orchestrator) wikiReply(ctx context.Context, text string) string {
	term := intent.WikiTerm(text)

	if cached, found := o.cache.Get(ctx, "wiki", term); found {
		o.metrics.RecordCacheHit("wiki")
		return cached
	}

	start := time.Now()
	summary, err := o.wiki.Summary(ctx, term, wikiSentences)
	if err != nil {
		o.metrics.RecordProviderRequest("wiki", "error", time.Since(start))
		o.logger.WithError(err).WithField("term", term).Warn("Wiki lookup failed")
		return o.localizer.Get(i18n.MsgWikiNotFound, nil)
	}
	o.metrics.RecordProviderRequest("wiki", "success", time.Since(start))

	if err := o.cache.Set(ctx, "wiki", term, summary); err != nil {
		o.logger.WithError(err).Warn("Failed to cache wiki summary")
	}
	return summary
}

func (o *Orchestrator) searchReply(ctx context.Context, text string) string {
	query := intent.SearchTerm(text)

	start := time.Now()
	results, err := o.search.Search(ctx, query, searchResultCount, o.config.Chat.SearchLanguage)
	if err != nil {
		o.metrics.RecordProviderRequest("search", "error", time.Since(start))
		o.logger.WithError(err).WithField("query", query).Warn("Search failed")
		return o.localizer.Get(i18n.MsgSearchFailed, nil)
	}
	o.metrics.RecordProviderRequest("search", "success", time.Since(start))

	// Zero results and a failed call are two distinct replies
	if len(results) == 0 {
		return o.localizer.Get(i18n.MsgSearchNoResults, nil)
	}

	var b strings.Builder
	b.WriteString(o.localizer.Get(i18n.MsgSearchHeader, nil))
	for _, u := range results {
		b.WriteString("\n- ")
		b.WriteString(u)
	}
	return b.String()
}

func (o *Orchestrator) chatReply(ctx context.Context, userID, text string) string {
	jarvis := o.store.Mode(userID)

	systemPrompt := o.localizer.Get(i18n.MsgSystemPersona, map[string]interface{}{
		"TimeContext": o.timeContext(),
	})
	if jarvis {
		systemPrompt += "\n" + o.localizer.Get(i18n.MsgJarvisDirective, nil)
	}

	messages := []models.Message{{Role: models.RoleSystem, Content: systemPrompt}}

	// Memory is read only in normal mode; jarvis turns are isolated
	if !jarvis {
		messages = append(messages, o.store.RecentContext(userID, o.config.Chat.HistoryWindow)...)
	}
	messages = append(messages, models.Message{Role: models.RoleUser, Content: text})

	start := time.Now()
	answer, err := o.aiService.GetResponse(ctx, messages)
	if err != nil {
		o.metrics.RecordProviderRequest("ai", "error", time.Since(start))
		if errors.Is(err, ai.ErrNoAPIKey) {
			return o.localizer.Get(i18n.MsgMissingAPIKey, nil)
		}
		logger.WithUser(o.logger, userID).WithError(err).Warn("AI request failed")
		return o.localizer.Get(i18n.MsgAIUnavailable, nil)
	}
	o.metrics.RecordProviderRequest("ai", "success", time.Since(start))

	if !jarvis {
		o.store.AppendTurn(userID, text, answer)
	}
	o.metrics.SetActiveSessions(float64(o.store.Count()))

	return answer
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
