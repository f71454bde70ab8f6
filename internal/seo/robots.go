// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "strings"

// Paths crawlers are asked to skip: the REST API, health probes and the client bundle.
var defaultDisallow = []string{"/rest/", "/health", "/app/"}

// RobotsConfig configures robots.txt.
type RobotsConfig struct {
	SiteURL     string // Origin used for the Sitemap line; empty omits it
	DisallowAll bool   // Staging and development sites block every crawler
}

// Robots renders robots.txt.
func Robots(cfg RobotsConfig) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if cfg.DisallowAll {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	for _, path := range defaultDisallow {
		sb.WriteString("Disallow: " + path + "\n")
	}
	sb.WriteString("Allow: /\n")

	if cfg.SiteURL != "" {
		sb.WriteString("\nSitemap: " + strings.TrimSuffix(cfg.SiteURL, "/") + "/sitemap.xml\n")
	}
	return sb.String()
}
