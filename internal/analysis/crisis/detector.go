package crisis

import "strings"

// crisisPhrases are matched as substrings of the lowercased input. Order is
// fixed so the first match wins when callers ask which phrase triggered.
var crisisPhrases = []string{
	"suicide", "kill myself", "end it all", "want to die", "not worth living",
	"harm myself", "no point", "give up on life", "better off dead",
	"suicidal", "self harm", "cut myself", "overdose",
}

// Detect reports whether text contains any crisis phrase. Matching is
// case-insensitive and positional: a phrase anywhere in the text triggers.
func Detect(text string) bool {
	_, ok := Match(text)
	return ok
}

// Match returns the first crisis phrase found in text, if any.
func Match(text string) (string, bool) {
	normalized := strings.ToLower(text)
	if strings.TrimSpace(normalized) == "" {
		return "", false
	}

	for _, phrase := range crisisPhrases {
		if strings.Contains(normalized, phrase) {
			return phrase, true
		}
	}
	return "", false
}
