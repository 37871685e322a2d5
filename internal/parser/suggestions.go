package parser

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/lpp-lang/lpp/internal/i18n"
	"github.com/lpp-lang/lpp/internal/lexer"
)

// Suggestion is an advisory fix attached to a source position
type Suggestion struct {
	Position lexer.Position
	Literal  string // the text found in the source
	Keyword  string // the keyword it most likely meant
	Message  string
}

const (
	minSuggestLength   = 3
	maxSuggestDistance = 2
)

var keywordList = func() []string {
	words := lexer.Keywords()
	sort.Strings(words)
	return words
}()

// suggestKeyword records a suggestion when tok looks like a misspelled keyword.
func (p *Parser) suggestKeyword(tok lexer.Token) {
	keyword, ok := closestKeyword(tok.Literal)
	if !ok {
		return
	}

	p.suggestions = append(p.suggestions, Suggestion{
		Position: tok.Pos,
		Literal:  tok.Literal,
		Keyword:  keyword,
		Message: p.catalog.Message(i18n.MsgDidYouMean, i18n.Args{
			"Keyword": keyword,
			"Literal": tok.Literal,
		}),
	})
}

// closestKeyword returns the keyword nearest to word, ignoring case. Candidates
// are keywords that contain word as a subsequence (missing letters) or that
// lie within a small edit distance of it (swapped or wrong letters).
func closestKeyword(word string) (string, bool) {
	if utf8.RuneCountInString(word) < minSuggestLength {
		return "", false
	}
	folded := strings.ToLower(word)

	best, bestDistance := "", -1
	consider := func(keyword string, limit int) {
		d := fuzzy.LevenshteinDistance(folded, keyword)
		if d > limit {
			return
		}
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = keyword, d
		}
	}

	// Dropped letters are the most common typo, so subsequence matches may
	// lie further away than plain edits.
	for _, rank := range fuzzy.RankFindNormalizedFold(word, keywordList) {
		consider(rank.Target, utf8.RuneCountInString(rank.Target)/2)
	}
	for _, keyword := range keywordList {
		consider(keyword, maxDistance(keyword))
	}

	if bestDistance < 0 || best == word {
		return "", false
	}
	return best, true
}

func maxDistance(keyword string) int {
	if d := utf8.RuneCountInString(keyword) / 3; d > maxSuggestDistance {
		return d
	}
	return maxSuggestDistance
}
