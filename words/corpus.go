// Package words holds the static word corpus (region -> category -> words)
// and the random selection used at round start.
package words

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var corpusFile []byte

// Corpus maps region -> category -> words. It is read-only after Load.
type Corpus map[string]map[string][]string

func Load() (Corpus, error) {
	var corpus Corpus
	if err := yaml.Unmarshal(corpusFile, &corpus); err != nil {
		return nil, fmt.Errorf("parsing word corpus: %w", err)
	}
	if len(corpus) == 0 {
		return nil, fmt.Errorf("word corpus is empty")
	}
	for region, categories := range corpus {
		if len(categories) == 0 {
			return nil, fmt.Errorf("region %q has no categories", region)
		}
		for category, list := range categories {
			if len(list) == 0 {
				return nil, fmt.Errorf("category %q in region %q has no words", category, region)
			}
		}
	}
	return corpus, nil
}

func (c Corpus) HasRegion(region string) bool {
	_, ok := c[region]
	return ok
}

// Categories returns the category names for a region in sorted order.
func (c Corpus) Categories(region string) []string {
	categories := make([]string, 0, len(c[region]))
	for category := range c[region] {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// CategoriesByRegion returns every region's category list, for clients that
// let the host browse the corpus before starting a round.
func (c Corpus) CategoriesByRegion() map[string][]string {
	out := make(map[string][]string, len(c))
	for region := range c {
		out[region] = c.Categories(region)
	}
	return out
}
