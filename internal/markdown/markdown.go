package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"gitlab.com/golang-commonmark/markdown"
)

var renderer = markdown.New(
	markdown.HTML(true),
	markdown.Linkify(true),
	markdown.Typographer(true),
	markdown.MaxNesting(10),
)

// Render converts Markdown content to HTML
func Render(content string) string {
	return renderer.RenderToString([]byte(content))
}

var (
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```|~~~.*?~~~")
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	emphasisRe   = regexp.MustCompile(`[*_]{1,3}([^*_]+)[*_]{1,3}`)
	linkRe       = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	blockquoteRe = regexp.MustCompile(`(?m)^>\s*`)
	listMarkerRe = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// StripMarkers removes heading, emphasis, code, link, blockquote and
// list markers, leaving plain text suitable for excerpts
func StripMarkers(content string) string {
	s := codeBlockRe.ReplaceAllString(content, " ")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "$1")
	s = linkRe.ReplaceAllString(s, "$1")
	s = blockquoteRe.ReplaceAllString(s, "")
	s = listMarkerRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Truncate trims s to at most maxLen runes without touching any
// Markdown markers, dropping whitespace left dangling at the cut
func Truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:maxLen]))
}

// Excerpt derives a plain-text excerpt of at most maxLen runes
func Excerpt(content string, maxLen int) string {
	return Truncate(StripMarkers(content), maxLen)
}
