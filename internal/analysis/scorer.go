package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// ScoreScale expresses scores as matches per this many words.
const ScoreScale = 10000

// Scorer rates text against an industry taxonomy.
// It is safe for concurrent use once built.
type Scorer struct {
	categories []compiledCategory
}

type compiledCategory struct {
	category domain.IndustryCategory
	patterns []*regexp.Regexp
}

// NewScorer compiles a whole-word pattern for every keyword in the taxonomy.
func NewScorer(taxonomy domain.Taxonomy) *Scorer {
	cats := taxonomy.Categories()
	s := &Scorer{categories: make([]compiledCategory, 0, len(cats))}

	for _, c := range cats {
		keywords := c.Keywords()
		cc := compiledCategory{
			category: c,
			patterns: make([]*regexp.Regexp, 0, len(keywords)),
		}
		for _, kw := range keywords {
			cc.patterns = append(cc.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		s.categories = append(s.categories, cc)
	}

	return s
}

// Score counts whole-word, case-insensitive keyword matches per category and
// converts them into a per-10,000-word rate rounded to one decimal place.
// Results are ordered by score descending; ties keep taxonomy order.
// Empty text or a zero word count yields no scores.
func (s *Scorer) Score(text string, wordCount int) domain.IndustryScores {
	scores := domain.IndustryScores{}
	if text == "" || wordCount == 0 {
		return scores
	}

	lower := strings.ToLower(text)

	for _, cc := range s.categories {
		matches := 0
		for _, re := range cc.patterns {
			matches += len(re.FindAllStringIndex(lower, -1))
		}

		scores = append(scores, domain.IndustryScore{
			Key:     cc.category.Key(),
			Name:    cc.category.Name(),
			Score:   roundTo1(float64(matches) / float64(wordCount) * ScoreScale),
			Matches: matches,
			Color:   cc.category.Color(),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
