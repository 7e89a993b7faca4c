// Package i18n holds the user-facing strings of cutit as embedded YAML tables,
// one per supported language.
package i18n

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var localeFiles = map[language.Tag]string{
	language.English:             "locales/en.yaml",
	language.BrazilianPortuguese: "locales/pt_br.yaml",
}

// Messages is a read-only message table for one language.
type Messages struct {
	tag  language.Tag
	text map[string]string
}

// Get returns the message for key, or the key itself when it is unknown.
func (m Messages) Get(key string) string {
	if v, ok := m.text[key]; ok {
		return v
	}
	return key
}

func (m Messages) Tag() language.Tag {
	return m.tag
}

// Keys returns the message keys in sorted order.
func (m Messages) Keys() []string {
	keys := make([]string, 0, len(m.text))
	for k := range m.text {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	loadOnce sync.Once
	catalog  map[language.Tag]Messages
	loadErr  error
)

func load() {
	catalog = make(map[language.Tag]Messages, len(localeFiles))
	for tag, path := range localeFiles {
		data, err := localeFS.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("read %s: %w", path, err)
			return
		}
		var text map[string]string
		if err := yaml.Unmarshal(data, &text); err != nil {
			loadErr = fmt.Errorf("parse %s: %w", path, err)
			return
		}
		catalog[tag] = Messages{tag: tag, text: text}
	}
}

// Lookup returns the table for a supported language.
func Lookup(tag language.Tag) (Messages, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return Messages{}, loadErr
	}
	m, ok := catalog[tag]
	if !ok {
		return Messages{}, fmt.Errorf("unsupported language %s", tag)
	}
	return m, nil
}

// TagFor maps the pt_br configuration flag to a language.
func TagFor(ptBR bool) language.Tag {
	if ptBR {
		return language.BrazilianPortuguese
	}
	return language.English
}

// For returns the messages selected by the pt_br flag. The tables are
// embedded, so a load failure is a build defect and panics.
func For(ptBR bool) Messages {
	m, err := Lookup(TagFor(ptBR))
	if err != nil {
		panic(fmt.Sprintf("i18n: %v", err))
	}
	return m
}

// Supported lists the languages with a message table.
func Supported() []language.Tag {
	return []language.Tag{language.English, language.BrazilianPortuguese}
}
