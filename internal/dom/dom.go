// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build js && wasm

// Package dom binds the client app to the browser document through syscall/js.
package dom

import (
	"strconv"
	"syscall/js"

	"github.com/olegiv/pixelflame/internal/app"
	"github.com/olegiv/pixelflame/internal/reveal"
)

// RootID is the element the app renders into.
const RootID = "app"

const reducedMotionQuery = "(prefers-reduced-motion: reduce)"

// Document implements app.Platform on the global browser document.
type Document struct {
	window   js.Value
	document js.Value
	root     js.Value
}

var _ app.Platform = (*Document)(nil)

// New finds the mount root. It falls back to document.body when #app is missing.
func New() *Document {
	window := js.Global()
	document := window.Get("document")
	root := document.Call("getElementById", RootID)
	if root.IsNull() {
		root = document.Get("body")
	}
	return &Document{window: window, document: document, root: root}
}

func (d *Document) Mount(markup string)     { d.root.Set("innerHTML", markup) }
func (d *Document) ScrollToTop()            { d.window.Call("scrollTo", 0, 0) }
func (d *Document) PushPath(path string)    { d.history().Call("pushState", nil, "", path) }
func (d *Document) ReplacePath(path string) { d.history().Call("replaceState", nil, "", path) }
func (d *Document) history() js.Value       { return d.window.Get("history") }

// PrefersReducedMotion reports the user's reduced-motion preference.
func (d *Document) PrefersReducedMotion() bool {
	mm := d.window.Get("matchMedia")
	if mm.IsUndefined() {
		return false
	}
	return d.window.Call("matchMedia", reducedMotionQuery).Get("matches").Bool()
}

// Elements wraps every mounted [data-animate] node. Nodes without a data-animate-key
// are keyed by document position and animation name.
func (d *Document) Elements() []reveal.Element {
	nodes := d.root.Call("querySelectorAll", "["+reveal.AttrAnimate+"]")
	n := nodes.Length()
	out := make([]reveal.Element, 0, n)
	for i := range n {
		v := nodes.Index(i)
		key := v.Call("getAttribute", reveal.AttrKey)
		if key.IsNull() || key.String() == "" {
			name := v.Call("getAttribute", reveal.AttrAnimate).String()
			out = append(out, &Element{v: v, key: strconv.Itoa(i) + ":" + name})
			continue
		}
		out = append(out, &Element{v: v, key: key.String()})
	}
	return out
}

// Watcher creates an IntersectionObserver. Without one, every observed element is
// reported as intersecting right away.
func (d *Document) Watcher(opts reveal.Options, onEntries func([]reveal.Entry)) reveal.Watcher {
	return newObserver(d.window, opts, onEntries)
}

// Element is a wrapped DOM node.
type Element struct {
	v   js.Value
	key string
}

func (e *Element) Key() string                { return e.key }
func (e *Element) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }
func (e *Element) RemoveAttr(name string)     { e.v.Call("removeAttribute", name) }

func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *Element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e *Element) AddClass(classes ...string) {
	e.v.Get("classList").Call("add", toAny(classes)...)
}

func (e *Element) RemoveClass(classes ...string) {
	e.v.Get("classList").Call("remove", toAny(classes)...)
}

// OnceAnimationEnd runs fn after the element's next animationend event.
func (e *Element) OnceAnimationEnd(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	e.v.Call("addEventListener", "animationend", cb, map[string]any{"once": true})
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
