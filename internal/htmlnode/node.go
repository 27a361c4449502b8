// Package htmlnode models the small HTML tree produced by the markdown pipeline.
//
// A tree has two node kinds: Leaf (a tag wrapping text, or bare text when the
// tag is empty) and Parent (a tag wrapping an ordered, non-empty list of
// children). Trees are built bottom-up and never mutated after construction.
package htmlnode

import "errors"

// Sentinel errors for tree rendering.
var (
	// ErrMissingLeafValue indicates a tagged leaf with no text where the tag
	// requires textual content.
	ErrMissingLeafValue = errors.New("leaf node requires a value")

	// ErrEmptyParentChildren indicates a parent node with no children or no tag.
	ErrEmptyParentChildren = errors.New("parent node requires a tag and children")

	// ErrUnsupportedNode indicates a Node implementation outside this package.
	ErrUnsupportedNode = errors.New("unsupported node type")
)

// Node is implemented by *Leaf and *Parent only.
type Node interface {
	node()
}

// Attr is a single HTML attribute.
type Attr struct {
	Key   string
	Value string
}

// Attributes is an ordered attribute list. Rendering follows insertion order.
type Attributes []Attr

// Get returns the value of the first attribute named key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Leaf is a node without children. An empty Tag renders Text as-is.
type Leaf struct {
	Tag   string
	Text  string
	Attrs Attributes
}

// Parent is a node owning an ordered list of children.
type Parent struct {
	Tag      string
	Children []Node
	Attrs    Attributes
}

func (*Leaf) node()   {}
func (*Parent) node() {}

// NewLeaf creates a leaf node.
func NewLeaf(tag, text string, attrs ...Attr) *Leaf {
	return &Leaf{Tag: tag, Text: text, Attrs: attrs}
}

// NewText creates an untagged leaf that renders as raw text.
func NewText(text string) *Leaf {
	return &Leaf{Text: text}
}

// NewParent creates a parent node. The children slice is owned by the node.
func NewParent(tag string, children []Node, attrs ...Attr) *Parent {
	return &Parent{Tag: tag, Children: children, Attrs: attrs}
}

// voidTags lists elements that carry no textual content.
var voidTags = map[string]bool{
	"img":   true,
	"br":    true,
	"hr":    true,
	"input": true,
	"meta":  true,
	"link":  true,
}

// IsVoid reports whether tag is allowed to render with empty text.
func IsVoid(tag string) bool {
	return voidTags[tag]
}
