// Package catalog holds the fixed questionnaire options and their
// Arabic-to-English translations. The catalog is parsed once and read-only
// afterwards, so it is safe for concurrent use.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultDocument []byte

// Option is one selectable answer.
type Option struct {
	Arabic  string `yaml:"ar" json:"ar"`
	English string `yaml:"en" json:"en"`
}

// Category is one of the fixed question groups.
type Category struct {
	// Key names the category in the options listing ("interests").
	Key string `yaml:"key" json:"key"`
	// AnswerKey names the category in submitted answers ("interest").
	AnswerKey string   `yaml:"answer_key" json:"answerKey"`
	Label     string   `yaml:"label" json:"label"`
	Question  string   `yaml:"question" json:"question"`
	Options   []Option `yaml:"options" json:"options"`
}

// Labels returns the Arabic labels in display order.
func (c Category) Labels() []string {
	out := make([]string, 0, len(c.Options))
	for _, o := range c.Options {
		out = append(out, o.Arabic)
	}
	return out
}

// Catalog is the immutable option catalog.
type Catalog struct {
	categories []Category
	byAnswer   map[string]int
	toEnglish  map[string]string
	toArabic   map[string]string
}

type document struct {
	Categories []Category `yaml:"categories"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. It panics if the embedded document is
// malformed, which can only happen at build time.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultDocument)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded document: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, errors.New("catalog has no categories")
	}

	c := &Catalog{
		categories: make([]Category, 0, len(doc.Categories)),
		byAnswer:   make(map[string]int, len(doc.Categories)),
		toEnglish:  make(map[string]string),
		toArabic:   make(map[string]string),
	}
	seenKeys := make(map[string]struct{}, len(doc.Categories))
	for _, cat := range doc.Categories {
		cat.Key = strings.TrimSpace(cat.Key)
		cat.AnswerKey = strings.TrimSpace(cat.AnswerKey)
		if cat.Key == "" || cat.AnswerKey == "" {
			return nil, errors.New("category key and answer_key are required")
		}
		if _, dup := seenKeys[cat.Key]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.Key)
		}
		if _, dup := c.byAnswer[cat.AnswerKey]; dup {
			return nil, fmt.Errorf("duplicate answer key %q", cat.AnswerKey)
		}
		seenKeys[cat.Key] = struct{}{}

		labels := make(map[string]struct{}, len(cat.Options))
		options := make([]Option, 0, len(cat.Options))
		for _, opt := range cat.Options {
			ar := normalize(opt.Arabic)
			en := strings.TrimSpace(opt.English)
			if ar == "" || en == "" {
				return nil, fmt.Errorf("category %q: option needs both ar and en", cat.Key)
			}
			if _, dup := labels[ar]; dup {
				return nil, fmt.Errorf("category %q: duplicate label %q", cat.Key, ar)
			}
			labels[ar] = struct{}{}
			if prev, ok := c.toEnglish[ar]; ok && prev != en {
				return nil, fmt.Errorf("label %q translated as both %q and %q", ar, prev, en)
			}
			c.toEnglish[ar] = en
			if _, ok := c.toArabic[en]; !ok {
				c.toArabic[en] = ar
			}
			options = append(options, Option{Arabic: ar, English: en})
		}
		cat.Options = options
		c.byAnswer[cat.AnswerKey] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	return c, nil
}

// Categories returns the categories in questionnaire order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		cat.Options = append([]Option(nil), cat.Options...)
		out[i] = cat
	}
	return out
}

// AnswerKeys returns the keys a complete answer set must carry, in order.
func (c *Catalog) AnswerKeys() []string {
	out := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.AnswerKey)
	}
	return out
}

// Category looks a category up by its answer key.
func (c *Catalog) Category(answerKey string) (Category, bool) {
	i, ok := c.byAnswer[answerKey]
	if !ok {
		return Category{}, false
	}
	cat := c.categories[i]
	cat.Options = append([]Option(nil), cat.Options...)
	return cat, true
}

// Options returns the Arabic labels grouped by listing key.
func (c *Catalog) Options() map[string][]string {
	out := make(map[string][]string, len(c.categories))
	for _, cat := range c.categories {
		out[cat.Key] = cat.Labels()
	}
	return out
}

// Translate returns the English label for an Arabic one.
func (c *Catalog) Translate(arabic string) (string, bool) {
	en, ok := c.toEnglish[normalize(arabic)]
	return en, ok
}

// TranslateOrKeep returns the English label, or the input unchanged when the
// catalog has no entry for it.
func (c *Catalog) TranslateOrKeep(label string) string {
	if en, ok := c.Translate(label); ok {
		return en
	}
	return label
}

// Reverse returns the Arabic label for an English one.
func (c *Catalog) Reverse(english string) (string, bool) {
	ar, ok := c.toArabic[strings.TrimSpace(english)]
	return ar, ok
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
