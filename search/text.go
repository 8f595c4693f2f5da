package search

import (
	"strings"
	"unicode"
)

// Italian stop words to filter out when checking for verbatim matches
var stopWords = map[string]bool{
	"il": true, "lo": true, "la": true, "i": true, "gli": true, "le": true,
	"l": true, "un": true, "uno": true, "una": true,
	"di": true, "a": true, "da": true, "in": true, "con": true, "su": true,
	"per": true, "tra": true, "fra": true,
	"del": true, "dello": true, "della": true, "dei": true, "degli": true, "delle": true, "dell": true,
	"al": true, "allo": true, "alla": true, "ai": true, "agli": true, "alle": true, "all": true,
	"dal": true, "dallo": true, "dalla": true, "dai": true, "dagli": true, "dalle": true, "dall": true,
	"nel": true, "nello": true, "nella": true, "nei": true, "negli": true, "nelle": true, "nell": true,
	"sul": true, "sullo": true, "sulla": true, "sui": true, "sugli": true, "sulle": true, "sull": true,
	"e": true, "ed": true, "o": true, "od": true, "ma": true, "che": true, "non": true,
	"è": true, "sono": true, "era": true, "come": true, "quale": true, "quali": true,
	"chi": true, "cosa": true, "quando": true, "dove": true, "quanto": true, "quanti": true,
	"si": true, "ci": true, "mi": true, "ti": true, "vi": true, "ne": true,
	"questo": true, "questa": true, "quello": true, "quella": true,
	"ha": true, "hanno": true, "stato": true, "stata": true,
}

// tokenizeAndFilter splits text into lowercase words, breaking on apostrophes
// and punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		if !stopWords[word] {
			filtered = append(filtered, word)
		}
	}

	return filtered
}

// containsAllQueryWords checks if all query words (after filtering) appear in the document
func containsAllQueryWords(document, query string) bool {
	queryWords := tokenizeAndFilter(query)
	if len(queryWords) == 0 {
		return false
	}

	docWords := tokenizeAndFilter(document)
	docWordSet := make(map[string]bool, len(docWords))
	for _, word := range docWords {
		docWordSet[word] = true
	}

	// Check if all query words exist in document
	for _, qWord := range queryWords {
		if !docWordSet[qWord] {
			return false
		}
	}

	return true
}
