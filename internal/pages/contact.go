// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/net/html"

	"github.com/olegiv/pixelflame/internal/content"
	r "github.com/olegiv/pixelflame/internal/render"
	"github.com/olegiv/pixelflame/internal/view"
)

// SuccessDuration is how long the success notice stays before the form returns to idle.
const SuccessDuration = 5 * time.Second

// GenericSubmitError is shown when a failed submission carries no message.
const GenericSubmitError = "Failed to submit form. Please try again."

// Contact form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

var fieldOrder = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

// ContactStatus is the state of the contact form.
type ContactStatus int

// Contact form states.
const (
	ContactIdle ContactStatus = iota
	ContactSubmitting
	ContactSuccess
	ContactError
)

func (s ContactStatus) String() string {
	switch s {
	case ContactIdle:
		return "idle"
	case ContactSubmitting:
		return "submitting"
	case ContactSuccess:
		return "success"
	case ContactError:
		return "error"
	}
	return "unknown"
}

type submitResult struct {
	err error
}

// Contact is the contact page and its form.
type Contact struct {
	base
	deps    Deps
	fields  content.ContactMessage
	status  ContactStatus
	message string
	details []string

	timer *clock.Timer
	epoch int
}

// NewContact creates the contact controller with an empty form.
func NewContact(deps Deps) *Contact {
	return &Contact{base: base{page: view.Contact}, deps: deps.withDefaults()}
}

// SetField updates one form field. Unknown names are ignored.
func (c *Contact) SetField(name, value string) {
	switch name {
	case FieldName:
		c.fields.Name = value
	case FieldEmail:
		c.fields.Email = value
	case FieldSubject:
		c.fields.Subject = value
	case FieldMessage:
		c.fields.Message = value
	}
}

// Fields returns the current form values.
func (c *Contact) Fields() content.ContactMessage { return c.fields }

// Status returns the form state.
func (c *Contact) Status() ContactStatus { return c.status }

// Message returns the error shown in the error state.
func (c *Contact) Message() string { return c.message }

// Submit starts sending the form. It returns nil while a submission is in flight.
func (c *Contact) Submit() Job {
	if c.status == ContactSubmitting {
		return nil
	}
	c.stopTimer()
	c.status = ContactSubmitting
	c.message = ""
	c.details = nil

	msg := c.fields
	store, logger := c.deps.Store, c.deps.Logger
	return func(ctx context.Context) any {
		err := store.SubmitContactMessage(ctx, msg)
		if err != nil {
			logger.Warn("failed to submit contact form", "error", err)
		}
		return submitResult{err: err}
	}
}

// Finish applies the outcome of a submission. Success clears the form and
// schedules the return to idle; failure keeps every field.
func (c *Contact) Finish(result any) {
	res, ok := result.(submitResult)
	if !ok || c.status != ContactSubmitting {
		return
	}

	if res.err != nil {
		c.status = ContactError
		c.message, c.details = failureMessage(res.err)
		return
	}

	c.status = ContactSuccess
	c.fields = content.ContactMessage{}

	c.epoch++
	epoch := c.epoch
	c.timer = c.deps.Clock.AfterFunc(SuccessDuration, func() {
		c.deps.Dispatch(func() {
			if c.epoch == epoch && c.status == ContactSuccess {
				c.status = ContactIdle
				c.timer = nil
			}
		})
	})
}

// Close cancels a pending return to idle.
func (c *Contact) Close() {
	c.stopTimer()
}

func (c *Contact) stopTimer() {
	c.epoch++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// failureMessage returns the store's message, or the generic one, and the
// per-field details in form order.
func failureMessage(err error) (string, []string) {
	var storeErr *content.StoreError
	if !errors.As(err, &storeErr) || storeErr.Message == "" {
		return GenericSubmitError, nil
	}

	var details []string
	for _, f := range fieldOrder {
		if d, ok := storeErr.Details[f]; ok {
			details = append(details, d)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(storeErr.Details)) {
		if !slices.Contains(fieldOrder, k) {
			details = append(details, storeErr.Details[k])
		}
	}
	return storeErr.Message, details
}

func (c *Contact) Render() *html.Node {
	var alert *html.Node
	switch c.status {
	case ContactSuccess:
		alert = r.El("div", r.Attrs("class", "alert alert-success", "role", "status"),
			r.El("strong", nil, r.Text("Message sent successfully!")),
			r.El("p", nil, r.Text("We'll get back to you as soon as possible.")),
		)
	case ContactError:
		alert = r.El("div", r.Attrs("class", "alert alert-error", "role", "alert"),
			r.El("strong", nil, r.Text("Failed to send message")),
			r.El("p", nil, r.Text(c.message)),
		)
		if len(c.details) > 0 {
			alert.AppendChild(r.El("ul", nil, listItems(c.details)...))
		}
	}

	submitting := c.status == ContactSubmitting
	button := r.Attrs("type", "submit", "class", "btn")
	label := "Send Message"
	if submitting {
		button = append(button, html.Attribute{Key: "disabled", Val: ""})
		label = "Sending..."
	}

	return r.Fragment(
		r.El("section", r.Attrs("class", c.mountClass("hero")),
			r.El("div", r.Attrs("class", "container"),
				r.El("h1", animate(nil, "fadeInUp", "", "hero:title"), r.Text("Get In Touch")),
				r.El("p", animate(nil, "fadeInUp", "0.2s", "hero:lead"),
					r.Text("Ready to start your project? Have questions? We'd love to hear from you.")),
			),
		),
		section("section",
			r.El("div", r.Attrs("class", "grid"),
				infoCard(0, "Email Us", "Our team typically responds within 24 hours",
					r.El("a", r.Attrs("href", "mailto:hello@pixelflame.com"), r.Text("hello@pixelflame.com"))),
				infoCard(1, "Location", "Working remotely, serving clients globally", r.Text("Remote-First Team")),
				infoCard(2, "Social Media", "Follow us for updates and insights",
					r.El("a", r.Attrs("href", "https://instagram.com", "rel", "noopener", "target", "_blank"), r.Text("Instagram")),
					r.Text(" "),
					r.El("a", r.Attrs("href", "https://linkedin.com", "rel", "noopener", "target", "_blank"), r.Text("LinkedIn"))),
			),
		),
		section("section",
			r.El("h2", nil, r.Text("Send Us a Message")),
			r.El("form", r.Attrs("id", FormID, "class", "contact"),
				field("Your Name *", FieldName, "text", "John Doe", c.fields.Name, true),
				field("Your Email *", FieldEmail, "email", "john@example.com", c.fields.Email, true),
				field("Subject", FieldSubject, "text", "Project Inquiry", c.fields.Subject, false),
				textarea("Your Message *", FieldMessage, "Tell us about your project...", c.fields.Message),
				alert,
				r.El("button", button, r.Text(label)),
			),
		),
	)
}

func infoCard(i int, title, text string, children ...*html.Node) *html.Node {
	return r.El("div", animate(r.Attrs("class", "card card-body"), "fadeInUp", stagger(i, 100), "info:"+title),
		r.El("h3", nil, r.Text(title)),
		r.El("p", r.Attrs("class", "card-meta"), r.Text(text)),
		r.El("p", nil, children...),
	)
}

func field(label, name, typ, hint, value string, required bool) *html.Node {
	attrs := r.Attrs("id", name, "name", name, "type", typ, "placeholder", hint, "value", value)
	if required {
		attrs = append(attrs, html.Attribute{Key: "required", Val: ""})
	}
	return r.El("div", nil,
		r.El("label", r.Attrs("for", name), r.Text(label)),
		r.El("input", attrs),
	)
}

func textarea(label, name, hint, value string) *html.Node {
	return r.El("div", nil,
		r.El("label", r.Attrs("for", name), r.Text(label)),
		r.El("textarea", r.Attrs("id", name, "name", name, "rows", "6", "placeholder", hint, "required", ""), r.Text(value)),
	)
}
