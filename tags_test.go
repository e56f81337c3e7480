package main

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocabularyShape(t *testing.T) {
	assert.GreaterOrEqual(t, len(htmlTags), 100)
	assert.LessOrEqual(t, len(htmlTags), 120)

	assert.True(t, sort.StringsAreSorted(htmlTags), "vocabulary must be sorted for binary search")

	seen := make(map[string]bool)
	for _, tag := range htmlTags {
		assert.Equal(t, strings.ToLower(tag), tag, "vocabulary must be lowercase")
		assert.False(t, seen[tag], "duplicate vocabulary entry: %s", tag)
		seen[tag] = true
	}
}

func TestVocabularyContents(t *testing.T) {
	expected := []string{
		"html", "head", "body", "title", "meta", "link",
		"div", "span", "p", "a", "img",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"table", "tr", "td", "th",
		"form", "input", "button", "select", "textarea",
		"nav", "header", "footer", "section", "article",
		"audio", "video", "source", "track", "canvas",
		"s", "u",
	}

	for _, tag := range expected {
		assert.True(t, isValidTag(tag), "expected vocabulary entry: %s", tag)
	}
}

func TestIsValidTag(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"div", true},
		{"span", true},
		{"button", true},
		{"h1", true},

		// case permutations
		{"DIV", true},
		{"Div", true},
		{"dIv", true},
		{"BUTTON", true},

		// surrounding whitespace is normalized away
		{" div", true},
		{"div ", true},
		{" div ", true},
		{"\tdiv\n", true},

		// rejections
		{"", false},
		{"   ", false},
		{"\t", false},
		{"notreal", false},
		{"fake", false},
		{"xyz", false},
		{"custom", false},
		{"d iv", false},
		{"div!", false},
		{"div@", false},
		{"div#", false},
		{"<div>", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, isValidTag(tc.tag), "isValidTag(%q)", tc.tag)
	}
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "div", normalizeTag("  DIV\n"))
	assert.Equal(t, "span", normalizeTag("span"))
	assert.Equal(t, "", normalizeTag("   "))
}
