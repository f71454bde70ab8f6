// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"

	r "github.com/olegiv/pixelflame/internal/render"
)

const wordsPerMinute = 200

// ReadTime estimates reading time at 200 words per minute, rounded up, never
// less than one minute.
func ReadTime(text string) string {
	words := len(strings.Fields(text))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// FormatDate formats t as "January 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// LineKind classifies one line of post content.
type LineKind int

// Line kinds.
const (
	LineParagraph LineKind = iota
	LineH1
	LineH2
	LineH3
	LineSpacer
)

// ClassifyLine returns the kind of line and its text with the heading prefix removed.
func ClassifyLine(line string) (LineKind, string) {
	line = strings.TrimSuffix(line, "\r")
	switch {
	case strings.HasPrefix(line, "### "):
		return LineH3, line[4:]
	case strings.HasPrefix(line, "## "):
		return LineH2, line[3:]
	case strings.HasPrefix(line, "# "):
		return LineH1, line[2:]
	case strings.TrimSpace(line) == "":
		return LineSpacer, ""
	}
	return LineParagraph, line
}

// Markdown renders the restricted line format used by blog posts: three heading
// levels, blank-line spacing and plain paragraphs. There is no inline markup.
func Markdown(text string) []*html.Node {
	lines := strings.Split(text, "\n")
	nodes := make([]*html.Node, 0, len(lines))
	for _, line := range lines {
		kind, s := ClassifyLine(line)
		switch kind {
		case LineH1:
			nodes = append(nodes, r.El("h1", nil, r.Text(s)))
		case LineH2:
			nodes = append(nodes, r.El("h2", nil, r.Text(s)))
		case LineH3:
			nodes = append(nodes, r.El("h3", nil, r.Text(s)))
		case LineSpacer:
			nodes = append(nodes, r.El("div", r.Attrs("class", "spacer")))
		default:
			nodes = append(nodes, r.El("p", nil, r.Text(s)))
		}
	}
	return nodes
}
