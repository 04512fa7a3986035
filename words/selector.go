package words

import (
	"errors"
	"math/rand"
)

var (
	ErrUnknownRegion = errors.New("unknown-region")
	ErrNoCategories  = errors.New("no-categories-available")
)

// Selector picks a category and a word for a round, uniformly at random over
// the categories a room has not banned.
type Selector struct {
	corpus Corpus
	intn   func(n int) int
}

func NewSelector(corpus Corpus) *Selector {
	return &Selector{corpus: corpus, intn: rand.Intn}
}

// Pick chooses one category from region excluding banned, then one word from
// that category.
func (s *Selector) Pick(region string, banned []string) (category, word string, err error) {
	categories, ok := s.corpus[region]
	if !ok {
		return "", "", ErrUnknownRegion
	}

	excluded := make(map[string]struct{}, len(banned))
	for _, name := range banned {
		excluded[name] = struct{}{}
	}

	available := make([]string, 0, len(categories))
	for _, name := range s.corpus.Categories(region) {
		if _, isBanned := excluded[name]; !isBanned {
			available = append(available, name)
		}
	}
	if len(available) == 0 {
		return "", "", ErrNoCategories
	}

	category = available[s.intn(len(available))]
	list := categories[category]
	word = list[s.intn(len(list))]
	return category, word, nil
}
