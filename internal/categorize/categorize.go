// Package categorize maps free-text transaction descriptions to a spend
// category by keyword matching.
package categorize

import (
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// priority is the fixed order categories are tested in. A description that
// matches keywords of two categories gets the one listed first, so
// "amazon grocery" is Food, not Shopping.
var priority = []models.Category{
	models.CategoryFood,
	models.CategoryTransport,
	models.CategoryShopping,
	models.CategoryEntertainment,
	models.CategoryBills,
	models.CategoryTransfer,
}

// DefaultKeywords are the built-in keyword sets, matched as substrings of
// the lower-cased description.
var DefaultKeywords = map[models.Category][]string{
	models.CategoryFood: {
		"restaurant", "cafe", "swiggy", "zomato", "mcdonalds", "kfc", "food",
		"dominos", "coffee", "grocery", "supermarket", "mart",
	},
	models.CategoryTransport: {
		"uber", "ola", "taxi", "petrol", "fuel", "transit", "rail", "irctc", "flight",
	},
	models.CategoryShopping: {
		"amazon", "flipkart", "myntra", "shopping", "store", "mall", "retail",
	},
	models.CategoryEntertainment: {
		"netflix", "spotify", "movie", "cinema", "bookmyshow", "game",
	},
	models.CategoryBills: {
		"electricity", "water", "internet", "mobile", "recharge", "broadband",
		"insurance", "emi", "loan",
	},
	models.CategoryTransfer: {
		"transfer", "neft", "imps", "rtgs", "upi", "wallet", "sent to", "received from",
	},
}

// Categorizer holds immutable keyword sets and is safe for concurrent use.
type Categorizer struct {
	keywords map[models.Category][]string
}

// New returns a categorizer using the default keywords plus any extra
// keywords per category name. Unknown category names are ignored; the
// priority order cannot be changed.
func New(extra map[string][]string) *Categorizer {
	kw := make(map[models.Category][]string, len(DefaultKeywords))
	for cat, words := range DefaultKeywords {
		kw[cat] = append([]string(nil), words...)
	}
	for name, words := range extra {
		cat, ok := models.ParseCategory(name)
		if !ok || cat == models.CategoryOther {
			continue
		}
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				kw[cat] = append(kw[cat], w)
			}
		}
	}
	return &Categorizer{keywords: kw}
}

var defaultCategorizer = New(nil)

// Categorize classifies a description with the default keywords.
func Categorize(description string) models.Category {
	return defaultCategorizer.Categorize(description)
}

// Categorize returns the first category, in priority order, with a keyword
// contained in the description, or Other.
func (c *Categorizer) Categorize(description string) models.Category {
	desc := strings.ToLower(description)
	for _, cat := range priority {
		for _, kw := range c.keywords[cat] {
			if strings.Contains(desc, kw) {
				return cat
			}
		}
	}
	return models.CategoryOther
}
