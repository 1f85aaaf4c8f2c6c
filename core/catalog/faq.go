package catalog

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// minSuggestionRatio is the lowest question similarity worth suggesting.
const minSuggestionRatio = 0.3

type FAQ struct {
	ID       string   `yaml:"id" json:"id"`
	Question string   `yaml:"question" json:"question"`
	Answer   string   `yaml:"answer" json:"answer"`
	Category Category `yaml:"category" json:"category"`
	Tags     []string `yaml:"tags" json:"tags"`
}

func (c *Catalog) FAQs() []FAQ {
	faqs := make([]FAQ, len(c.faqs))
	copy(faqs, c.faqs)
	return faqs
}

// PopularFAQs returns the frequently asked questions, in their configured order.
func (c *Catalog) PopularFAQs() []FAQ {
	faqs := make([]FAQ, 0, len(c.popularFAQs))
	for _, id := range c.popularFAQs {
		for _, f := range c.faqs {
			if f.ID == id {
				faqs = append(faqs, f)
				break
			}
		}
	}
	return faqs
}

// SearchFAQs returns the FAQs of category `cat` (CategoryAll for every category) whose question,
// answer or one of whose tags contains `query`, ignoring case. A blank query matches everything.
func (c *Catalog) SearchFAQs(query string, cat Category) []FAQ {
	q := fold(strings.TrimSpace(query))
	faqs := make([]FAQ, 0)
	for _, f := range c.faqs {
		if cat != CategoryAll && cat != "" && f.Category != cat {
			continue
		}
		if q == "" || matchesFAQ(q, f) {
			faqs = append(faqs, f)
		}
	}
	return faqs
}

// SuggestFAQs ranks questions by similarity to `query` and returns at most `n` of them.
// Used when a search has no match.
func (c *Catalog) SuggestFAQs(query string, n int) []FAQ {
	q := fold(strings.TrimSpace(query))
	if q == "" || n <= 0 {
		return []FAQ{}
	}

	type scored struct {
		faq   FAQ
		ratio float64
	}
	candidates := make([]scored, 0, len(c.faqs))
	qChars := strings.Split(q, "")
	for _, f := range c.faqs {
		m := difflib.NewMatcher(qChars, strings.Split(fold(f.Question), ""))
		if r := m.Ratio(); r >= minSuggestionRatio {
			candidates = append(candidates, scored{faq: f, ratio: r})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ratio > candidates[j].ratio })

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	faqs := make([]FAQ, 0, len(candidates))
	for _, s := range candidates {
		faqs = append(faqs, s.faq)
	}
	return faqs
}

func matchesFAQ(q string, f FAQ) bool {
	if strings.Contains(fold(f.Question), q) || strings.Contains(fold(f.Answer), q) {
		return true
	}
	for _, tag := range f.Tags {
		if strings.Contains(fold(tag), q) {
			return true
		}
	}
	return false
}

// fold puts Hangul in composed form and folds case, so decomposed input still matches.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
