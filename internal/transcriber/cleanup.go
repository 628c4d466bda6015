package transcriber

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fillerTokens are removed when they appear as whole words surrounded by
// spaces. Case-sensitive, matched against the literal padded form.
var fillerTokens = []string{
	" um ", " uh ", " ah ", " er ", " like ",
	" you know ", " I mean ", " basically ",
	" actually ", " literally ",
}

// CleanTranscript normalizes whitespace, removes filler tokens and
// capitalizes the first character. Deterministic and idempotent: cleaning
// an already-cleaned transcript returns it unchanged.
func CleanTranscript(transcript string) string {
	cleaned := strings.Join(strings.Fields(transcript), " ")

	// Removing one filler can pull another into surrounded-by-space
	// position ("um um"), so repeat until nothing changes.
	for {
		prev := cleaned
		for _, filler := range fillerTokens {
			cleaned = strings.ReplaceAll(cleaned, filler, " ")
		}
		for strings.Contains(cleaned, "  ") {
			cleaned = strings.ReplaceAll(cleaned, "  ", " ")
		}
		if cleaned == prev {
			break
		}
	}

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(cleaned)
	return string(unicode.ToUpper(r)) + cleaned[size:]
}
