package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-mdsite/internal/block"
	"github.com/alnah/go-mdsite/internal/htmlnode"
	"github.com/alnah/go-mdsite/internal/inline"
)

// Sentinel errors for tree construction.
var (
	ErrUnsupportedBlockType    = errors.New("unsupported block type")
	ErrUnsupportedFragmentKind = errors.New("unsupported fragment kind")
	ErrEmptyDocument           = errors.New("document has no content blocks")
)

// DocumentToNode converts a markdown document into a div wrapping one node
// per block.
func DocumentToNode(markdown string) (*htmlnode.Parent, error) {
	blocks := block.Split(markdown)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrEmptyDocument, htmlnode.ErrEmptyParentChildren)
	}

	children := make([]htmlnode.Node, 0, len(blocks))
	for i, b := range blocks {
		node, err := BlockToNode(b, block.Classify(b))
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		children = append(children, node)
	}
	return htmlnode.NewParent("div", children), nil
}

// BlockToNode converts one classified block into its HTML subtree.
func BlockToNode(b string, typ block.Type) (*htmlnode.Parent, error) {
	switch typ {
	case block.Paragraph:
		return paragraphToNode(b)
	case block.Heading:
		return headingToNode(b)
	case block.Code:
		return codeToNode(b), nil
	case block.Quote:
		return quoteToNode(b)
	case block.UnorderedList:
		return listToNode(b, "ul", trimUnorderedMarker)
	case block.OrderedList:
		return listToNode(b, "ol", trimOrderedMarker)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedBlockType, typ)
	}
}

// FragmentToNode maps an inline fragment to a leaf node.
func FragmentToNode(f inline.Fragment) (*htmlnode.Leaf, error) {
	switch f.Kind {
	case inline.Plain:
		return htmlnode.NewText(f.Content), nil
	case inline.Bold:
		return htmlnode.NewLeaf("b", f.Content), nil
	case inline.Italic:
		return htmlnode.NewLeaf("i", f.Content), nil
	case inline.Code:
		return htmlnode.NewLeaf("code", f.Content), nil
	case inline.Link:
		return htmlnode.NewLeaf("a", f.Content, htmlnode.Attr{Key: "href", Value: f.Target}), nil
	case inline.Image:
		return htmlnode.NewLeaf("img", "",
			htmlnode.Attr{Key: "src", Value: f.Target},
			htmlnode.Attr{Key: "alt", Value: f.Content},
		), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFragmentKind, f.Kind)
	}
}

// TextToChildren tokenizes inline text and maps each fragment to a leaf.
func TextToChildren(text string) ([]htmlnode.Node, error) {
	frags, err := inline.Tokenize(text)
	if err != nil {
		return nil, err
	}
	children := make([]htmlnode.Node, 0, len(frags))
	for _, f := range frags {
		leaf, err := FragmentToNode(f)
		if err != nil {
			return nil, err
		}
		children = append(children, leaf)
	}
	return children, nil
}

func paragraphToNode(b string) (*htmlnode.Parent, error) {
	text := strings.Join(strings.Split(b, "\n"), " ")
	return wrapInline("p", text)
}

func headingToNode(b string) (*htmlnode.Parent, error) {
	level := block.HeadingLevel(b)
	if level == 0 {
		return nil, fmt.Errorf("%w: %q is not a heading", ErrUnsupportedBlockType, firstLine(b))
	}
	return wrapInline("h"+strconv.Itoa(level), b[level+1:])
}

// codeToNode keeps the interior verbatim. The opening fence line (fence plus
// any info string) is dropped up to the first newline.
func codeToNode(b string) *htmlnode.Parent {
	body := strings.TrimPrefix(b, block.Fence)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	}
	body = strings.TrimSuffix(body, block.Fence)
	return htmlnode.NewParent("pre", []htmlnode.Node{htmlnode.NewLeaf("code", body)})
}

func quoteToNode(b string) (*htmlnode.Parent, error) {
	lines := strings.Split(b, "\n")
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, "> "); ok {
			lines[i] = rest
		} else {
			lines[i] = strings.TrimPrefix(line, ">")
		}
	}
	return wrapInline("blockquote", strings.Join(lines, "\n"))
}

func listToNode(b, tag string, trimMarker func(string) string) (*htmlnode.Parent, error) {
	lines := strings.Split(b, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for i, line := range lines {
		li, err := wrapInline("li", trimMarker(line))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, li)
	}
	return htmlnode.NewParent(tag, items), nil
}

func trimUnorderedMarker(line string) string {
	return strings.TrimPrefix(line, "- ")
}

func trimOrderedMarker(line string) string {
	if _, rest, ok := strings.Cut(line, ". "); ok {
		return rest
	}
	return line
}

func wrapInline(tag, text string) (*htmlnode.Parent, error) {
	children, err := TextToChildren(text)
	if err != nil {
		return nil, fmt.Errorf("<%s>: %w", tag, err)
	}
	return htmlnode.NewParent(tag, children), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
