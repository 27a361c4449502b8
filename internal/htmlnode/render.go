package htmlnode

import (
	"fmt"
	"html"
	"strings"
)

// RenderOptions controls serialization.
type RenderOptions struct {
	// Escape HTML-escapes text and attribute values. Off by default: output
	// is emitted verbatim and callers must sanitize untrusted input.
	Escape bool
}

// Render serializes n without escaping.
func Render(n Node) (string, error) {
	return RenderWith(n, RenderOptions{})
}

// RenderWith serializes n using opts.
func RenderWith(n Node, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := write(&b, n, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func write(b *strings.Builder, n Node, opts RenderOptions) error {
	switch n := n.(type) {
	case *Leaf:
		return writeLeaf(b, n, opts)
	case *Parent:
		return writeParent(b, n, opts)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedNode, n)
	}
}

func writeLeaf(b *strings.Builder, l *Leaf, opts RenderOptions) error {
	if l == nil {
		return fmt.Errorf("%w: nil leaf", ErrMissingLeafValue)
	}
	if l.Tag == "" {
		b.WriteString(text(l.Text, opts))
		return nil
	}
	if l.Text == "" && !IsVoid(l.Tag) {
		return fmt.Errorf("%w: <%s>", ErrMissingLeafValue, l.Tag)
	}
	openTag(b, l.Tag, l.Attrs, opts)
	b.WriteString(text(l.Text, opts))
	closeTag(b, l.Tag)
	return nil
}

func writeParent(b *strings.Builder, p *Parent, opts RenderOptions) error {
	if p == nil || p.Tag == "" {
		return fmt.Errorf("%w: missing tag", ErrEmptyParentChildren)
	}
	if len(p.Children) == 0 {
		return fmt.Errorf("%w: <%s> has no children", ErrEmptyParentChildren, p.Tag)
	}
	openTag(b, p.Tag, p.Attrs, opts)
	for _, child := range p.Children {
		if err := write(b, child, opts); err != nil {
			return err
		}
	}
	closeTag(b, p.Tag)
	return nil
}

func openTag(b *strings.Builder, tag string, attrs Attributes, opts RenderOptions) {
	b.WriteByte('<')
	b.WriteString(tag)
	b.WriteString(RenderAttributes(attrs, opts))
	b.WriteByte('>')
}

func closeTag(b *strings.Builder, tag string) {
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}

// RenderAttributes renders attrs as ` key="value"` pairs in order.
func RenderAttributes(attrs Attributes, opts RenderOptions) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, attr := range attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(text(attr.Value, opts))
		b.WriteByte('"')
	}
	return b.String()
}

func text(s string, opts RenderOptions) string {
	if opts.Escape {
		return html.EscapeString(s)
	}
	return s
}
