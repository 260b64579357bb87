package query

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mathieu-neron/tubedash/internal/model"
)

// WordColumn is the token column produced by WordFrequencies.
const WordColumn = "word"

// TokenizeText joins the first limit non-null values of a text field, in row
// order, separated by single spaces. A limit of 0 takes every value.
func TokenizeText(rows []model.Video, f Field, limit int) (string, error) {
	if err := requireText("field", f); err != nil {
		return "", err
	}
	if limit < 0 {
		return "", invalid(ParamWords, strconv.Itoa(limit), "must not be negative")
	}

	var parts []string
	for _, v := range rows {
		s, ok := text(v, f)
		if !ok {
			continue
		}
		parts = append(parts, s)
		if limit > 0 && len(parts) == limit {
			break
		}
	}
	return strings.Join(parts, " "), nil
}

// WordFrequencies counts the words of a corpus for a word cloud. Words are
// lowercased; stop words and single characters are dropped. The result is
// ordered by count, then alphabetically, and cut to n rows when n > 0.
func WordFrequencies(corpus string, n int) model.Table {
	counts := make(map[string]int)
	for _, w := range strings.FieldsFunc(strings.ToLower(corpus), isWordSeparator) {
		w = strings.Trim(w, "'")
		w = strings.TrimSuffix(w, "'s")
		if utf8.RuneCountInString(w) < 2 || stopWords[w] {
			continue
		}
		counts[w]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	slices.SortFunc(words, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})
	if n > 0 && len(words) > n {
		words = words[:n]
	}

	t := model.NewTable(WordColumn, CountColumn)
	for _, w := range words {
		t.Rows = append(t.Rows, model.Row{WordColumn: w, CountColumn: counts[w]})
	}
	return t
}

func isWordSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}

var stopWords = func() map[string]bool {
	words := strings.Fields(`
		a about above after again against all also am an and any are as at
		be because been before being below between both but by can cannot could
		did do does doing down during each few for from further get had has have
		having he her here hers herself him himself his how http https if in into
		is it its itself just let me more most my myself no nor not of off on once
		only or other ought our ours ourselves out over own same she should so some
		such than that the their theirs them themselves then there these they this
		those through to too under until up very was we were what when where which
		while who whom why will with would www com you your yours yourself yourselves
	`)
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()
