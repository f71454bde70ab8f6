// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"golang.org/x/net/html"

	r "github.com/olegiv/pixelflame/internal/render"
	"github.com/olegiv/pixelflame/internal/view"
)

var story = []string{
	"Pixel Flame was born from a passion for creating digital experiences that truly matter. " +
		"We believe that great software is more than just code. It's about solving real problems " +
		"and making a meaningful impact.",
	"Our journey began with a simple mission: to bridge the gap between cutting-edge technology " +
		"and beautiful design. Today, we work with startups, growing businesses, and established " +
		"enterprises to bring their digital visions to life.",
	"Every project we undertake is treated as a unique challenge, combining technical expertise " +
		"with creative innovation to deliver solutions that exceed expectations. We don't just build " +
		"applications; we craft experiences that users love.",
}

var stack = []string{"React & Next.js", "Node.js & APIs", "React Native", "UI/UX Design", "Cloud Services", "Performance"}

// About is the company page. It has no data.
type About struct{ base }

func (a *About) Render() *html.Node {
	paragraphs := r.Each(story, func(_ int, s string) *html.Node {
		return r.El("p", nil, r.Text(s))
	})
	techs := r.Each(stack, func(i int, s string) *html.Node {
		return r.El("div", animate(r.Attrs("class", "card card-body"), "zoomIn", stagger(i, 100), "stack:"+s),
			r.El("h3", nil, r.Text(s)))
	})

	return r.Fragment(
		r.El("section", r.Attrs("class", a.mountClass("hero")),
			r.El("div", r.Attrs("class", "container"),
				r.El("h1", animate(nil, "fadeInUp", "", "hero:title"), r.Text("About Pixel Flame")),
				r.El("p", animate(nil, "fadeInUp", "0.2s", "hero:lead"),
					r.Text("We are a team of passionate developers and designers dedicated to creating exceptional digital experiences")),
			),
		),
		section("section article",
			r.El("h2", animate(nil, "fadeIn", "", "story"), r.Text("Our Story")),
			r.Fragment(paragraphs...),
		),
		section("section",
			r.El("div", r.Attrs("class", "grid"),
				r.El("div", animate(r.Attrs("class", "card card-body"), "fadeInLeft", "", "mission"),
					r.El("h2", nil, r.Text("Our Mission")),
					r.El("p", nil, r.Text("To empower businesses and individuals by delivering innovative, scalable, and user-centric "+
						"digital solutions. We strive to transform complex challenges into elegant, efficient "+
						"applications that drive real results and create lasting value.")),
				),
				r.El("div", animate(r.Attrs("class", "card card-body"), "fadeInRight", "", "vision"),
					r.El("h2", nil, r.Text("Our Vision")),
					r.El("p", nil, r.Text("To be recognized as a leading force in digital innovation, known for creating exceptional "+
						"experiences that seamlessly blend technology with human-centered design. We envision a "+
						"future where every interaction delights users and every solution exceeds expectations.")),
				),
			),
		),
		section("section",
			r.El("h2", nil, r.Text("Our Tech Stack")),
			r.El("p", r.Attrs("class", "card-meta"), r.Text("We use cutting-edge technologies to build robust, scalable solutions")),
			r.El("div", r.Attrs("class", "grid"), techs...),
		),
		cta("cta:about", "Let's Build Something Amazing Together",
			"Ready to start your next project? We're here to help bring your ideas to life.",
			navLink(view.To(view.Contact), "btn", r.Text("Start a Project")),
			r.Text(" "),
			navLink(view.To(view.Projects), "btn btn-outline", r.Text("View Our Work"))),
	)
}

type offering struct {
	title        string
	description  string
	deliverables []string
	technologies []string
	examples     []string
}

var offerings = []offering{
	{
		title:       "Front-End Development",
		description: "We create stunning, responsive user interfaces that captivate users and drive engagement. Our front-end solutions combine cutting-edge technologies with intuitive design principles.",
		deliverables: []string{
			"Responsive web applications",
			"Single Page Applications (SPAs)",
			"Progressive Web Apps (PWAs)",
			"Cross-browser compatible interfaces",
			"Performance-optimized code",
			"Accessibility compliance (WCAG)",
		},
		technologies: []string{"React", "Next.js", "TypeScript", "Tailwind CSS", "Vue.js", "HTML5/CSS3", "Redux", "Zustand"},
		examples: []string{
			"E-commerce platforms with seamless shopping experiences",
			"Interactive dashboards and admin panels",
			"Landing pages with high conversion rates",
			"Portfolio and corporate websites",
		},
	},
	{
		title:       "Back-End Development",
		description: "Robust, scalable server-side solutions that power your applications. We build secure APIs, databases, and cloud infrastructure that handle growth effortlessly.",
		deliverables: []string{
			"RESTful and GraphQL APIs",
			"Database design and optimization",
			"Authentication and authorization",
			"Third-party API integrations",
			"Cloud deployment and scaling",
			"Server-side business logic",
		},
		technologies: []string{"Node.js", "Express", "NestJS", "PostgreSQL", "MongoDB", "Redis", "AWS", "Docker"},
		examples: []string{
			"Scalable microservices architectures",
			"Real-time chat and notification systems",
			"Payment processing integrations",
			"Content management systems",
		},
	},
	{
		title:       "Mobile App Development",
		description: "Native-quality mobile applications for iOS and Android. We leverage React Native to deliver cross-platform apps that look and feel native, saving time and cost.",
		deliverables: []string{
			"Cross-platform iOS & Android apps",
			"Native performance and feel",
			"Offline functionality",
			"Push notifications",
			"In-app purchases",
			"App Store deployment",
		},
		technologies: []string{"React Native", "Expo", "TypeScript", "Native Modules", "Firebase", "Redux"},
		examples: []string{
			"Social networking apps",
			"E-commerce mobile platforms",
			"Fitness and health tracking apps",
			"On-demand service applications",
		},
	},
	{
		title:       "UI/UX Design",
		description: "User-centered design that combines aesthetics with functionality. We create intuitive interfaces that users love, backed by research and best practices.",
		deliverables: []string{
			"User research and personas",
			"Wireframes and prototypes",
			"High-fidelity mockups",
			"Design systems and style guides",
			"Usability testing",
			"Responsive designs for all devices",
		},
		technologies: []string{"Figma", "Adobe XD", "Sketch", "InVision", "Miro", "Principle"},
		examples: []string{
			"Complete brand identity systems",
			"Mobile app UI/UX redesigns",
			"SaaS dashboard interfaces",
			"E-commerce user flows",
		},
	},
}

// Services lists what the agency offers. It has no data.
type Services struct{ base }

func (s *Services) Render() *html.Node {
	items := r.Each(offerings, func(_ int, o offering) *html.Node {
		return r.El("article", animate(r.Attrs("class", "section"), "fadeInUp", "", "offering:"+o.title),
			r.El("h2", nil, r.Text(o.title)),
			r.El("p", nil, r.Text(o.description)),
			r.El("div", r.Attrs("class", "grid"),
				r.El("div", nil,
					r.El("h3", nil, r.Text("What You Get:")),
					r.El("ul", nil, listItems(o.deliverables)...),
				),
				r.El("div", nil,
					r.El("h3", nil, r.Text("Technologies We Use:")),
					r.El("div", nil, tags("tech", o.technologies)...),
				),
				r.El("div", nil,
					r.El("h3", nil, r.Text("Example Projects:")),
					r.El("ul", nil, listItems(o.examples)...),
				),
			),
		)
	})

	return r.Fragment(
		r.El("section", r.Attrs("class", s.mountClass("hero")),
			r.El("div", r.Attrs("class", "container"),
				r.El("h1", animate(nil, "fadeInUp", "", "hero:title"), r.Text("Our Services")),
				r.El("p", animate(nil, "fadeInUp", "0.2s", "hero:lead"),
					r.Text("Comprehensive digital solutions tailored to your business needs. From concept to deployment, we've got you covered.")),
			),
		),
		r.El("div", r.Attrs("class", "container"), items...),
		cta("cta:services", "Ready to Get Started?",
			"Let's discuss your project and find the perfect solution for your needs.",
			navLink(view.To(view.Contact), "btn", r.Text("Get a Free Consultation"))),
	)
}

func listItems(values []string) []*html.Node {
	return r.Each(values, func(_ int, v string) *html.Node {
		return r.El("li", nil, r.Text(v))
	})
}
