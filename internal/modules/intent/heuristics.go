package intent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// afterToward captures the text following the first standalone "đến" ("to").
var afterToward = regexp.MustCompile(`(?i)(?:^|[\s,;:])đến\s+(.+)$`)

// trailing filler that follows a destination in typical questions.
var fillerSuffixes = []string{
	"bằng cách nào",
	"như thế nào",
	"thế nào",
	"ở đâu",
	"giúp tôi",
	"giúp mình",
	"được không",
	"nhé",
	"nha",
	"với",
	"đi",
}

var titleCaser = cases.Title(language.Vietnamese)

// PlaceAfterKeyword is a best-effort, lossy fallback used when the model classified a
// navigation request but returned no place. It takes everything after "đến", drops
// trailing punctuation and common filler words, and title-cases the rest.
// Known limitations: a second clause after the place is kept verbatim, and "đến" used
// as a time word ("đến 5 giờ") yields a bogus place.
func PlaceAfterKeyword(question string) string {
	m := afterToward.FindStringSubmatch(strings.TrimSpace(question))
	if m == nil {
		return ""
	}
	place := strings.TrimSpace(m[1])
	for {
		before := place
		place = strings.TrimRight(place, " ?!.,;:…")
		lower := strings.ToLower(place)
		for _, suf := range fillerSuffixes {
			if strings.HasSuffix(lower, " "+suf) {
				place = strings.TrimSpace(place[:len(place)-len(suf)])
				break
			}
		}
		if place == before {
			break
		}
	}
	if place == "" {
		return ""
	}
	return titleCaser.String(place)
}
