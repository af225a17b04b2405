package greeting

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// MessageKey is the catalog key served by /hello-world-internationalized.
const MessageKey = "greeting.message"

// DefaultMessages is the built-in catalog content.
var DefaultMessages = map[language.Tag]map[string]string{
	language.Korean:  {MessageKey: "안녕하세요"},
	language.English: {MessageKey: "Hello"},
	language.French:  {MessageKey: "Bonjour"},
}

// Catalog resolves message keys for an Accept-Language header. It is
// immutable after construction and safe for concurrent use.
type Catalog struct {
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
	builder  *catalog.Builder
	has      map[language.Tag]map[string]bool
}

// NewCatalog builds a catalog whose unmatched requests resolve to fallback.
func NewCatalog(fallback language.Tag, messages map[language.Tag]map[string]string) (*Catalog, error) {
	if _, ok := messages[fallback]; !ok {
		return nil, fmt.Errorf("no messages for fallback locale %s", fallback)
	}

	c := &Catalog{
		fallback: fallback,
		tags:     []language.Tag{fallback},
		builder:  catalog.NewBuilder(catalog.Fallback(fallback)),
		has:      make(map[language.Tag]map[string]bool, len(messages)),
	}
	for tag, entries := range messages {
		if tag != fallback {
			c.tags = append(c.tags, tag)
		}
		c.has[tag] = make(map[string]bool, len(entries))
		for key, msg := range entries {
			if err := c.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s/%s: %w", tag, key, err)
			}
			c.has[tag][key] = true
		}
	}
	// first tag is the matcher's default
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Match picks the supported locale for an Accept-Language header value.
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

// Message returns key in the best locale for acceptLanguage. A key absent
// from the matched locale falls back to the default locale; a key absent
// everywhere is an error.
func (c *Catalog) Message(key, acceptLanguage string) (string, error) {
	tag := c.Match(acceptLanguage)
	if !c.has[tag][key] {
		tag = c.fallback
	}
	if !c.has[tag][key] {
		return "", fmt.Errorf("no message found under code %q for locale %s", key, tag)
	}
	return message.NewPrinter(tag, message.Catalog(c.builder)).Sprintf(key), nil
}
