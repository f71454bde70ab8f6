// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler-facing documents of the site: sitemap.xml,
// robots.txt and the meta tags of the shell page.
package seo

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq is how often a URL is expected to change.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL is a single <url> entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap is the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Entry is a detail page listed in the sitemap.
type Entry struct {
	Slug      string
	UpdatedAt time.Time
}

// staticPages are the client's parameterless pages other than home.
var staticPages = []struct {
	path     string
	freq     ChangeFreq
	priority string
}{
	{"/about", ChangeFreqMonthly, "0.6"},
	{"/services", ChangeFreqMonthly, "0.7"},
	{"/projects", ChangeFreqWeekly, "0.9"},
	{"/blog", ChangeFreqDaily, "0.9"},
	{"/contact", ChangeFreqMonthly, "0.5"},
}

// SitemapBuilder collects URLs under one site origin.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for siteURL (scheme and host, no trailing slash needed).
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: strings.TrimSuffix(siteURL, "/")}
}

// AddStaticPages adds the home page and every parameterless page.
func (b *SitemapBuilder) AddStaticPages() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "1.0",
	})
	for _, p := range staticPages {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + p.path,
			ChangeFreq: p.freq,
			Priority:   p.priority,
		})
	}
}

// AddProjects adds a /projects/{slug} URL per project.
func (b *SitemapBuilder) AddProjects(entries []Entry) {
	b.addEntries("/projects/", entries, ChangeFreqMonthly, "0.8")
}

// AddPosts adds a /blog/{slug} URL per published post.
func (b *SitemapBuilder) AddPosts(entries []Entry) {
	b.addEntries("/blog/", entries, ChangeFreqMonthly, "0.7")
}

func (b *SitemapBuilder) addEntries(prefix string, entries []Entry, freq ChangeFreq, priority string) {
	for _, e := range entries {
		if e.Slug == "" {
			continue
		}
		u := SitemapURL{
			Loc:        b.siteURL + prefix + url.PathEscape(e.Slug),
			ChangeFreq: freq,
			Priority:   priority,
		}
		if !e.UpdatedAt.IsZero() {
			u.LastMod = e.UpdatedAt.UTC().Format(time.DateOnly)
		}
		b.urls = append(b.urls, u)
	}
}

// Len returns the number of collected URLs.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build renders the sitemap XML with its declaration.
func (b *SitemapBuilder) Build() ([]byte, error) {
	body, err := xml.MarshalIndent(Sitemap{XMLNS: XMLNamespace, URLs: b.urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
