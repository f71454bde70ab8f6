// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "strings"

// Meta holds the meta tags of the shell page. The shell is the same document for
// every client path, so the tags describe the site rather than a page.
type Meta struct {
	Title         string
	Description   string
	Canonical     string
	Robots        string
	OGTitle       string
	OGDescription string
	OGImage       string
	OGType        string
	OGSiteName    string
	OGURL         string
	TwitterCard   string
}

// Site holds the site-wide values the meta tags are built from.
type Site struct {
	Name        string
	Title       string
	Description string
	URL         string // empty leaves canonical and og:url out
	Image       string // relative paths are resolved against URL
	NoIndex     bool
}

// BuildMeta fills Meta from site with fallbacks: the title falls back to the
// site name and the description is capped at 160 characters.
func BuildMeta(site Site) Meta {
	title := site.Title
	if title == "" {
		title = site.Name
	}
	desc := truncateText(site.Description, 160)

	m := Meta{
		Title:         title,
		Description:   desc,
		Robots:        "index,follow",
		OGTitle:       title,
		OGDescription: desc,
		OGType:        "website",
		OGSiteName:    site.Name,
		TwitterCard:   "summary",
	}
	if site.NoIndex {
		m.Robots = "noindex,nofollow"
	}
	if site.URL != "" {
		m.Canonical = strings.TrimSuffix(site.URL, "/") + "/"
		m.OGURL = m.Canonical
	}
	if site.Image != "" {
		m.OGImage = absoluteURL(site.Image, site.URL)
		m.TwitterCard = "summary_large_image"
	}
	return m
}

// truncateText cuts text to maxLen characters, preferring a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

func absoluteURL(u, siteURL string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || siteURL == "" {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return strings.TrimSuffix(siteURL, "/") + u
}
