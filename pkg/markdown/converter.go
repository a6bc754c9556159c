package markdown

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	paragraphRe = regexp.MustCompile(`<p>(.*?)</p>`)
	preCodeRe   = regexp.MustCompile(`<pre><code(?: class="[^"]*")?>(.*?)</code></pre>`)
	anyTagRe    = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)(?:\s[^>]*)?>`)
	tagNameRe   = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)`)
	newlinesRe  = regexp.MustCompile(`\n{3,}`)
)

// Telegram only renders a small tag subset in HTML parse mode
var supportedTags = map[string]bool{
	"b": true, "i": true, "u": true, "s": true,
	"code": true, "pre": true, "a": true, "br": true,
}

// ToTelegramHTML renders model output (markdown) as Telegram-compatible
// HTML for the Telegram bridge
func ToTelegramHTML(md string) string {
	if md == "" {
		return ""
	}

	html := string(blackfriday.Run([]byte(md), blackfriday.WithExtensions(blackfriday.CommonExtensions)))

	html = paragraphRe.ReplaceAllString(html, "$1\n")
	html = strings.NewReplacer(
		"<strong>", "<b>", "</strong>", "</b>",
		"<em>", "<i>", "</em>", "</i>",
		"<ul>", "", "</ul>", "",
		"<ol>", "", "</ol>", "",
		"<li>", "• ", "</li>", "\n",
	).Replace(html)
	html = preCodeRe.ReplaceAllString(html, "<pre>$1</pre>")

	// Strip everything Telegram would reject
	html = anyTagRe.ReplaceAllStringFunc(html, func(match string) string {
		tagMatch := tagNameRe.FindStringSubmatch(match)
		if len(tagMatch) > 1 && supportedTags[strings.ToLower(tagMatch[1])] {
			return match
		}
		return ""
	})

	html = newlinesRe.ReplaceAllString(html, "\n\n")
	return strings.TrimSpace(html)
}
