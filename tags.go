package main

import (
	"sort"
	"strings"
)

// htmlTags is the closed vocabulary of guessable tag names: the current
// HTML element list, lowercase, sorted, deduplicated. Solo scoring uses
// its length as the denominator, so additions change scores.
var htmlTags = []string{
	"a", "abbr", "address", "area", "article", "aside", "audio",
	"b", "base", "bdi", "bdo", "blockquote", "body", "br", "button",
	"canvas", "caption", "cite", "code", "col", "colgroup",
	"data", "datalist", "dd", "del", "details", "dfn", "dialog", "div", "dl", "dt",
	"em", "embed",
	"fieldset", "figcaption", "figure", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html",
	"i", "iframe", "img", "input", "ins",
	"kbd",
	"label", "legend", "li", "link",
	"main", "map", "mark", "menu", "meta", "meter",
	"nav", "noscript",
	"object", "ol", "optgroup", "option", "output",
	"p", "param", "picture", "pre", "progress",
	"q",
	"rp", "rt", "ruby",
	"s", "samp", "script", "search", "section", "select", "slot",
	"small", "source", "span", "strong", "style", "sub", "summary", "sup",
	"table", "tbody", "td", "template", "textarea", "tfoot", "th", "thead",
	"time", "title", "tr", "track",
	"u", "ul",
	"var", "video",
	"wbr",
}

// normalizeTag trims surrounding whitespace and lowercases, producing the
// canonical form stored in submissions.
func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// isValidTag reports whether tag names an element in the vocabulary.
// Input is normalized internally, so " DIV " and "div" are equivalent.
// Anything left containing a character outside [a-z0-9] fails, which
// covers interior whitespace and markup delimiters.
func isValidTag(tag string) bool {
	tag = normalizeTag(tag)
	if tag == "" {
		return false
	}

	for _, r := range tag {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}

	i := sort.SearchStrings(htmlTags, tag)

	return i < len(htmlTags) && htmlTags[i] == tag
}
