// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"strings"
	"testing"
	"time"

	r "github.com/olegiv/pixelflame/internal/render"
)

func TestReadTime(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", "1 min read"},
		{"one word", "hello", "1 min read"},
		{"exactly 200", strings.Repeat("w ", 200), "1 min read"},
		{"201 words", strings.Repeat("w ", 201), "2 min read"},
		{"400 words", strings.Repeat("word ", 400), "2 min read"},
		{"mixed whitespace", "a\tb\n\nc   d", "1 min read"},
		{"1001 words", strings.Repeat("x\n", 1001), "6 min read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadTime(tt.text); got != tt.want {
				t.Errorf("ReadTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.December, 9, 23, 59, 0, 0, time.UTC)
	if got := FormatDate(d); got != "December 9, 2024" {
		t.Errorf("FormatDate() = %q", got)
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line     string
		wantKind LineKind
		wantText string
	}{
		{"### Title", LineH3, "Title"},
		{"## Title", LineH2, "Title"},
		{"# Title", LineH1, "Title"},
		{"", LineSpacer, ""},
		{"   ", LineSpacer, ""},
		{"\r", LineSpacer, ""},
		{"Just text", LineParagraph, "Just text"},
		{"#NoSpace", LineParagraph, "#NoSpace"},
		{"#### Deep", LineParagraph, "#### Deep"},
		{"## Title\r", LineH2, "Title"},
		{"  # indented", LineParagraph, "  # indented"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			kind, text := ClassifyLine(tt.line)
			if kind != tt.wantKind || text != tt.wantText {
				t.Errorf("ClassifyLine(%q) = (%v, %q), want (%v, %q)", tt.line, kind, text, tt.wantKind, tt.wantText)
			}
		})
	}
}

func TestMarkdown(t *testing.T) {
	nodes := Markdown("# One\n## Two\n### Three\n\nPlain <b>text</b>")

	wantTags := []string{"h1", "h2", "h3", "div", "p"}
	if len(nodes) != len(wantTags) {
		t.Fatalf("len(nodes) = %d, want %d", len(nodes), len(wantTags))
	}
	for i, n := range nodes {
		if n.Data != wantTags[i] {
			t.Errorf("node %d = <%s>, want <%s>", i, n.Data, wantTags[i])
		}
	}
	if !r.HasClass(nodes[3], "spacer") {
		t.Error("blank line should render a spacer")
	}

	out, err := r.String(nodes[4])
	if err != nil {
		t.Fatal(err)
	}
	if out != "<p>Plain &lt;b&gt;text&lt;/b&gt;</p>" {
		t.Errorf("paragraph = %q, inline markup must stay text", out)
	}
}
