// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// BaseLocale is the fallback locale when a requested locale has no catalog.
const BaseLocale = "en-US"

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var supported = []*Catalog{enUSCatalog, ptBRCatalog}

// matcher resolves requested locales against the supported catalogs.
var matcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(supported))
	for _, c := range supported {
		tags = append(tags, language.MustParse(c.locale))
	}
	return language.NewMatcher(tags)
}()

// GetCatalog returns the catalog best matching the given locale.
// Falls back to en-US if the locale is unknown or unparseable.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		return enUSCatalog
	}

	tag, err := language.Parse(requested)
	if err != nil {
		return enUSCatalog
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return enUSCatalog
	}
	return supported[index]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
// Templates are always executed even with nil/empty metadata to ensure
// consistent output (template variables without metadata render as empty).
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	// Ensure metadata is non-nil for template execution
	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
