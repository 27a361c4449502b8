package mdsite_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdsite"
)

// Example demonstrates converting a markdown document to a full page.
func Example() {
	conv, err := mdsite.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), mdsite.Input{
		Markdown: "# Hello World\n\nThis is a test.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Title)
	fmt.Println(strings.Contains(string(result.HTML), "<title>Hello World</title>"))
	// Output:
	// Hello World
	// true
}

// ExampleMarkdownToHTML demonstrates the native engine on its own.
func ExampleMarkdownToHTML() {
	out, err := mdsite.MarkdownToHTML("## Intro\n\n- **one**\n- [two](/two)")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out)
	// Output: <div><h2>Intro</h2><ul><li><b>one</b></li><li><a href="/two">two</a></li></ul></div>
}

// Example_basePath demonstrates rewriting root-relative links for a site
// hosted under a sub-path.
func Example_basePath() {
	conv, err := mdsite.NewConverter(
		mdsite.WithBasePath("/repo/"),
		mdsite.WithTemplateContent("<h1>{{ Title }}</h1>{{ Content }}"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), mdsite.Input{
		Markdown: "# Blog\n\n[Home](/) and ![logo](/logo.png)",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(string(result.HTML))
	// Output: <h1>Blog</h1><div><h1>Blog</h1><p><a href="/repo/">Home</a> and <img src="/repo/logo.png" alt="logo"></img></p></div>
}

// Example_errors demonstrates matching conversion errors.
func Example_errors() {
	_, err := mdsite.MarkdownToHTML("an **unclosed bold")
	fmt.Println(errors.Is(err, mdsite.ErrMalformedInline))
	fmt.Println(mdsite.IsContentError(err))
	// Output:
	// true
	// true
}

// ExampleExtractTitle demonstrates title extraction.
func ExampleExtractTitle() {
	title, err := mdsite.ExtractTitle("intro\n\n  # Tolkien Fan Club  \n\n## Sub")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(title)
	// Output: Tolkien Fan Club
}
