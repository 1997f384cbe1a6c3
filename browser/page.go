// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package browser

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Page is a loaded and parsed HTML page.
type Page struct {
	// URL the page was loaded from.
	URL *url.URL

	// StatusCode and Header of the response the page was built from.
	StatusCode int
	Header     http.Header

	// Content is the raw page source as delivered to the browser.
	// For browsers executing scripts it is the serialized DOM after loading.
	Content []byte

	// Document is the parsed DOM.
	Document *goquery.Document
}

// NewPage parses content into a Page.
func NewPage(u *url.URL, status int, header http.Header, content []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	doc.Url = u
	if header == nil {
		header = http.Header{}
	}
	return &Page{
		URL:        u,
		StatusCode: status,
		Header:     header,
		Content:    content,
		Document:   doc,
	}, nil
}

// Root returns the document node.
func (p *Page) Root() *html.Node {
	return p.Document.Nodes[0]
}

// Find returns the elements matching the CSS selector.
func (p *Page) Find(selector string) *goquery.Selection {
	return p.Document.Find(selector)
}

// ByID returns the element with the given id attribute. The selection is
// empty if there is no such element.
func (p *Page) ByID(id string) *goquery.Selection {
	return p.Document.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
}

// Title returns the normalized text of the title element.
func (p *Page) Title() string {
	t := p.Find("title").First()
	if t.Length() == 0 {
		return ""
	}
	return TextContent(t.Get(0), false)
}

// Texts returns the normalized text content of each element matching
// selector in document order.
func (p *Page) Texts(selector string) []string {
	sel := p.Find(selector)
	texts := make([]string, 0, sel.Length())
	for _, n := range sel.Nodes {
		texts = append(texts, TextContent(n, false))
	}
	return texts
}

// String returns the serialized DOM.
func (p *Page) String() string {
	s, err := p.Document.Html()
	if err != nil {
		return string(p.Content)
	}
	return s
}

// TextContent returns the full text content of n. With raw processing the
// unprocessed content is returned. If raw==false then whitespace is
// normalized and the text is put into Unicode normal form C.
func TextContent(n *html.Node, raw bool) string {
	tc := textContentRec(n, raw)
	if !raw {
		tc = NormalizeText(tc)
	}
	return tc
}

// NormalizeText collapses runs of white space in s to one space, trims
// both ends and puts the result into Unicode normal form C. This is the
// text a reader sees, independent of how the view was indented.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// inlineElement contains the inline span HTML tags. Taken from
// https://developer.mozilla.org/de/docs/Web/HTML/Inline_elemente
var inlineElement = map[string]bool{
	"b":        true,
	"big":      true,
	"i":        true,
	"small":    true,
	"tt":       true,
	"abbr":     true,
	"acronym":  true,
	"cite":     true,
	"code":     true,
	"dfn":      true,
	"em":       true,
	"kbd":      true,
	"strong":   true,
	"samp":     true,
	"var":      true,
	"a":        true,
	"bdo":      true,
	"br":       true,
	"img":      true,
	"map":      true,
	"object":   true,
	"q":        true,
	"script":   true,
	"span":     true,
	"sub":      true,
	"sup":      true,
	"button":   true,
	"input":    true,
	"label":    true,
	"select":   true,
	"textarea": true,
}

// textContentRec serializes the text content of n. In raw mode the text
// content is completely unprocessed. If raw == false then content of block
// elements is surrounded by additional newlines.
func textContentRec(n *html.Node, raw bool) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode, html.DocumentNode:
		var b strings.Builder
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			cs := textContentRec(child, raw)
			if !raw && child.Type == html.ElementNode &&
				!inlineElement[child.Data] {
				cs = "\n" + cs + "\n"
			}
			b.WriteString(cs)
		}
		return b.String()
	}
	return ""
}
