// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/net/html"

	r "github.com/olegiv/pixelflame/internal/render"
	"github.com/olegiv/pixelflame/internal/reveal"
	"github.com/olegiv/pixelflame/internal/view"
)

// AttrNav marks an element whose click navigates to the path in its value.
const AttrNav = "data-nav"

// AttrFilter marks a project category filter button.
const AttrFilter = "data-filter"

// FormID is the id of the contact form.
const FormID = "contact-form"

// AttrMenu marks the button that opens and closes the small-screen menu.
const AttrMenu = "data-menu"

// ScrollShadowY is the scroll offset past which the header gets its shadow.
const ScrollShadowY = 20

// Chrome is the header state kept across pages.
type Chrome struct {
	MenuOpen bool
	Scrolled bool
}

func (c Chrome) headerClass() string {
	class := "site-header"
	if c.Scrolled {
		class += " scrolled"
	}
	if c.MenuOpen {
		class += " menu-open"
	}
	return class
}

type navItem struct {
	label string
	page  view.Page
}

var menu = []navItem{
	{"Home", view.Home},
	{"About", view.About},
	{"Services", view.Services},
	{"Projects", view.Projects},
	{"Blog", view.Blog},
	{"Contact", view.Contact},
}

// Layout wraps page content in the site header and footer. active is the rendered
// page; detail pages highlight their listing.
func Layout(active view.Page, chrome Chrome, now time.Time, page *html.Node) *html.Node {
	switch active {
	case view.ProjectDetail:
		active = view.Projects
	case view.BlogDetail:
		active = view.Blog
	}

	items := r.Each(menu, func(_ int, it navItem) *html.Node {
		attrs := navAttrs(view.To(it.page))
		if it.page == active {
			attrs = append(attrs, html.Attribute{Key: "class", Val: "active"})
			attrs = append(attrs, html.Attribute{Key: "aria-current", Val: "page"})
		}
		return r.El("li", nil, r.El("a", attrs, r.Text(it.label)))
	})

	return r.Fragment(
		r.El("header", r.Attrs("class", chrome.headerClass()),
			r.El("div", r.Attrs("class", "container"),
				r.El("a", append(navAttrs(view.Initial()), html.Attribute{Key: "class", Val: "brand"}),
					r.Text("Pixel "), r.El("span", nil, r.Text("Flame"))),
				menuToggle(chrome.MenuOpen),
				r.El("nav", r.Attrs("aria-label", "Main"),
					r.El("ul", r.Attrs("id", "site-menu", "class", "nav"), items...)),
			),
		),
		r.El("main", nil, page),
		footer(now),
	)
}

func menuToggle(open bool) *html.Node {
	label, icon := "Open menu", "☰"
	if open {
		label, icon = "Close menu", "✕"
	}
	return r.El("button", r.Attrs(
		"type", "button",
		"class", "menu-toggle",
		AttrMenu, "",
		"aria-controls", "site-menu",
		"aria-expanded", strconv.FormatBool(open),
		"aria-label", label,
	), r.Text(icon))
}

func footer(now time.Time) *html.Node {
	links := r.Each([]view.Page{view.Home, view.About, view.Services, view.Projects}, func(_ int, p view.Page) *html.Node {
		return r.El("li", nil, r.El("a", navAttrs(view.To(p)), r.Text(menuLabel(p))))
	})

	return r.El("footer", r.Attrs("class", "site-footer"),
		r.El("div", r.Attrs("class", "container"),
			r.El("p", r.Attrs("class", "brand"), r.Text("Pixel "), r.El("span", nil, r.Text("Flame"))),
			r.El("p", nil, r.Text("Crafting exceptional digital experiences with cutting-edge technology. "+
				"We transform ideas into powerful, scalable solutions.")),
			r.El("ul", r.Attrs("class", "nav"), links...),
			r.El("p", nil, r.El("a", r.Attrs("href", "mailto:hello@pixelflame.com"), r.Text("hello@pixelflame.com"))),
			r.El("p", r.Attrs("class", "card-meta"), r.Textf("© %d Pixel Flame. All rights reserved.", now.Year())),
		),
	)
}

func menuLabel(p view.Page) string {
	for _, it := range menu {
		if it.page == p {
			return it.label
		}
	}
	return p.String()
}

// navAttrs makes an element navigate to s on click.
func navAttrs(s view.State) []html.Attribute {
	path := s.Path()
	return r.Attrs("href", path, AttrNav, path)
}

// navLink is an anchor navigating to s.
func navLink(s view.State, class string, children ...*html.Node) *html.Node {
	attrs := navAttrs(s)
	if class != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: class})
	}
	return r.El("a", attrs, children...)
}

// animate marks attrs for a scroll reveal. key must be unique within the page.
func animate(attrs []html.Attribute, name, delay, key string) []html.Attribute {
	attrs = append(attrs,
		html.Attribute{Key: reveal.AttrAnimate, Val: name},
		html.Attribute{Key: reveal.AttrKey, Val: key},
	)
	if delay != "" {
		attrs = append(attrs, html.Attribute{Key: reveal.AttrDelay, Val: delay})
	}
	return attrs
}

// stagger returns the reveal delay of the i-th item in a list, stepMs apart.
func stagger(i, stepMs int) string {
	if i == 0 {
		return ""
	}
	return fmt.Sprintf("%gs", float64(i*stepMs)/1000)
}

// image renders an img, or nothing when src is empty.
func image(src, alt string) *html.Node {
	if src == "" {
		return nil
	}
	return r.El("img", r.Attrs("src", src, "alt", alt, "loading", "lazy"))
}

func tags(class string, values []string) []*html.Node {
	return r.Each(values, func(_ int, v string) *html.Node {
		return r.El("span", r.Attrs("class", class), r.Text(v))
	})
}

func section(class string, children ...*html.Node) *html.Node {
	return r.El("section", r.Attrs("class", class),
		r.El("div", r.Attrs("class", "container"), children...))
}

func placeholder(class, text string) *html.Node {
	return r.El("div", r.Attrs("class", class), r.El("p", nil, r.Text(text)))
}

// cta is the closing call-to-action block shared by several pages.
func cta(key, title, text string, actions ...*html.Node) *html.Node {
	return section("section hero",
		r.El("h2", animate(nil, "fadeIn", "", key), r.Text(title)),
		r.El("p", nil, r.Text(text)),
		r.El("p", nil, actions...),
	)
}
