package intent

import "strings"

// Intent is the classified purpose of one inbound message
type Intent int

const (
	GeneralChat Intent = iota
	ModeOn
	ModeOff
	TimeQuery
	CurrencyQuery
	EncyclopediaQuery
	SearchQuery
	LiveInfoQuery
)

func (i Intent) String() string {
	switch i {
	case ModeOn:
		return "mode_on"
	case ModeOff:
		return "mode_off"
	case TimeQuery:
		return "time"
	case CurrencyQuery:
		return "currency"
	case EncyclopediaQuery:
		return "encyclopedia"
	case SearchQuery:
		return "search"
	case LiveInfoQuery:
		return "live_info"
	default:
		return "general_chat"
	}
}

// Mode toggle phrases, matched against the whole trimmed message
const (
	modeOnPhrase  = "jarvis aç"
	modeOffPhrase = "jarvis kapat"
)

// Keyword lists are a behavioral contract. Matching is plain lower-cased
// substring containment, no tokenization, and the evaluation order below
// is fixed: a message containing both a time keyword and a currency
// keyword resolves to TimeQuery.
var (
	timeKeywords     = []string{"saat kaç", "kaç saat", "tarih ne", "bugün günlerden"}
	currencyKeywords = []string{"dolar", "euro", "kur", "usd", "eur"}
	wikiKeywords     = []string{"wikipedia", "vikipedi", "vikiden"}
	searchKeywords   = []string{"google", "ara", "bul", "internet", "netten bak", "güncel bak"}
	liveInfoKeywords = []string{
		"şu an", "şuan", "güncel", "bugün",
		"cumhurbaşkanı", "başkanı kim", "kim kazandı",
		"kaç oldu", "son durum", "son dakika",
		"dolar kaç", "euro kaç",
	}
)

// Defaults used when stripping trigger keywords leaves an empty term
const (
	DefaultSearchQuery = "Türkiye gündem"
	DefaultWikiTerm    = "Türkiye"
)

// Classify maps raw message text to exactly one Intent, first match wins
func Classify(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	switch lower {
	case modeOnPhrase:
		return ModeOn
	case modeOffPhrase:
		return ModeOff
	}

	if containsAny(lower, timeKeywords) {
		return TimeQuery
	}
	if containsAny(lower, currencyKeywords) {
		return CurrencyQuery
	}
	if containsAny(lower, wikiKeywords) {
		return EncyclopediaQuery
	}
	if containsAny(lower, searchKeywords) {
		return SearchQuery
	}
	if containsAny(lower, liveInfoKeywords) {
		return LiveInfoQuery
	}

	return GeneralChat
}

// SearchTerm strips search trigger keywords from the text to form the
// query sent to the search provider
func SearchTerm(text string) string {
	return stripKeywords(text, searchKeywords, DefaultSearchQuery)
}

// WikiTerm strips encyclopedia trigger keywords from the text to form
// the lookup term
func WikiTerm(text string) string {
	return stripKeywords(text, wikiKeywords, DefaultWikiTerm)
}

func stripKeywords(text string, keywords []string, fallback string) string {
	q := strings.ToLower(text)
	for _, w := range keywords {
		q = strings.ReplaceAll(q, w, "")
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return fallback
	}
	return q
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
