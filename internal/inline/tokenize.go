package inline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedInline indicates an unterminated inline delimiter.
var ErrMalformedInline = errors.New("invalid markdown syntax")

// delimiters are applied in order: "**" before "*" because "*" is a prefix
// of "**".
var delimiters = []struct {
	delim string
	kind  Kind
}{
	{"**", Bold},
	{"*", Italic},
	{"_", Italic},
	{"`", Code},
}

var (
	imagePattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\[\]]*)\]\(([^\(\)]*)\)`)
)

// Tokenize converts text into fragments. It fails with ErrMalformedInline
// when a delimiter appears an odd number of times in a plain span.
func Tokenize(text string) ([]Fragment, error) {
	frags := []Fragment{NewFragment(Plain, text)}

	var err error
	for _, d := range delimiters {
		frags, err = SplitDelimiter(frags, d.delim, d.kind)
		if err != nil {
			return nil, err
		}
	}

	frags = SplitImages(frags)
	frags = SplitLinks(frags)
	return frags, nil
}

// SplitDelimiter splits every plain fragment on delim. Odd-indexed parts
// become kind, even-indexed parts stay plain, empty parts are dropped.
// Non-plain fragments pass through unchanged.
func SplitDelimiter(frags []Fragment, delim string, kind Kind) ([]Fragment, error) {
	out := make([]Fragment, 0, len(frags))
	for _, f := range frags {
		if f.Kind != Plain {
			out = append(out, f)
			continue
		}

		parts := strings.Split(f.Content, delim)
		if len(parts)%2 == 0 {
			return nil, fmt.Errorf("%w: unmatched %q delimiter", ErrMalformedInline, delim)
		}
		for i, part := range parts {
			if part == "" {
				continue
			}
			if i%2 == 0 {
				out = append(out, NewFragment(Plain, part))
			} else {
				out = append(out, NewFragment(kind, part))
			}
		}
	}
	return out, nil
}

// Match is one occurrence of image or link syntax.
type Match struct {
	Text  string // alt or anchor text
	URL   string
	Start int // byte offset of the match in the scanned string
	End   int
}

// ExtractImages returns every ![alt](url) in text, left to right.
func ExtractImages(text string) []Match {
	return findAll(imagePattern, text, false)
}

// ExtractLinks returns every [anchor](url) in text that is not preceded by
// '!', left to right.
func ExtractLinks(text string) []Match {
	return findAll(linkPattern, text, true)
}

// findAll scans text for re. With skipBang, a match starting right after
// '!' is rejected and scanning resumes one byte later, which is what a
// negative lookbehind would do.
func findAll(re *regexp.Regexp, text string, skipBang bool) []Match {
	var matches []Match
	for pos := 0; pos <= len(text); {
		loc := re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if skipBang && start > 0 && text[start-1] == '!' {
			pos = start + 1
			continue
		}
		matches = append(matches, Match{
			Text:  text[pos+loc[2] : pos+loc[3]],
			URL:   text[pos+loc[4] : pos+loc[5]],
			Start: start,
			End:   end,
		})
		pos = end
	}
	return matches
}

// SplitImages extracts image fragments from plain fragments.
func SplitImages(frags []Fragment) []Fragment {
	return splitMatches(frags, ExtractImages, NewImage)
}

// SplitLinks extracts link fragments from plain fragments.
func SplitLinks(frags []Fragment) []Fragment {
	return splitMatches(frags, ExtractLinks, NewLink)
}

func splitMatches(frags []Fragment, extract func(string) []Match, build func(text, url string) Fragment) []Fragment {
	out := make([]Fragment, 0, len(frags))
	for _, f := range frags {
		if f.Kind != Plain {
			out = append(out, f)
			continue
		}

		matches := extract(f.Content)
		if len(matches) == 0 {
			out = append(out, f)
			continue
		}

		last := 0
		for _, m := range matches {
			if m.Start > last {
				out = append(out, NewFragment(Plain, f.Content[last:m.Start]))
			}
			out = append(out, build(m.Text, m.URL))
			last = m.End
		}
		if last < len(f.Content) {
			out = append(out, NewFragment(Plain, f.Content[last:]))
		}
	}
	return out
}
