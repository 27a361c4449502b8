// Package inline tokenizes inline markdown (bold, italic, code, links and
// images) into a flat sequence of typed text fragments.
package inline

import "fmt"

// Kind identifies the type of an inline fragment.
type Kind int

// Fragment kinds. The set is closed.
const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

var kindNames = [...]string{
	Plain:  "plain",
	Bold:   "bold",
	Italic: "italic",
	Code:   "code",
	Link:   "link",
	Image:  "image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// HasTarget reports whether fragments of kind k carry a URL.
func (k Kind) HasTarget() bool {
	return k == Link || k == Image
}

// Fragment is a typed span of inline text. For Link and Image, Content is
// the anchor or alt text and Target is the URL; Target is empty otherwise.
// Fragments are values and compare with ==.
type Fragment struct {
	Kind    Kind
	Content string
	Target  string
}

// NewFragment creates a fragment of a kind without a target.
func NewFragment(kind Kind, content string) Fragment {
	return Fragment{Kind: kind, Content: content}
}

// NewLink creates a link fragment.
func NewLink(anchor, url string) Fragment {
	return Fragment{Kind: Link, Content: anchor, Target: url}
}

// NewImage creates an image fragment.
func NewImage(alt, url string) Fragment {
	return Fragment{Kind: Image, Content: alt, Target: url}
}

func (f Fragment) String() string {
	if f.Kind.HasTarget() {
		return fmt.Sprintf("%s(%q, %q)", f.Kind, f.Content, f.Target)
	}
	return fmt.Sprintf("%s(%q)", f.Kind, f.Content)
}
