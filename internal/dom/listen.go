// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/olegiv/pixelflame/internal/app"
	"github.com/olegiv/pixelflame/internal/pages"
	"github.com/olegiv/pixelflame/internal/view"
)

// Sink receives translated browser events. Send must not block.
type Sink interface {
	Send(ev app.Event)
}

// Listeners holds the delegated handlers installed by Listen.
type Listeners struct {
	target  js.Value
	window  js.Value
	funcs   map[string]js.Func
	winFunc map[string]js.Func
}

// Listen delegates clicks, form input and submission on the mount root, and
// back/forward steps and scrolling on the window, to sink.
func (d *Document) Listen(sink Sink) *Listeners {
	l := &Listeners{
		target:  d.root,
		window:  d.window,
		funcs:   make(map[string]js.Func),
		winFunc: make(map[string]js.Func),
	}

	l.on("click", func(ev js.Value) {
		target := ev.Get("target")
		if nav := closest(target, "["+pages.AttrNav+"]"); !nav.IsNull() {
			s, ok := view.ParsePath(nav.Call("getAttribute", pages.AttrNav).String())
			if !ok || modified(ev) {
				return
			}
			ev.Call("preventDefault")
			sink.Send(app.NavigateEvent{State: s, Origin: view.OriginClick})
			return
		}
		if f := closest(target, "["+pages.AttrFilter+"]"); !f.IsNull() {
			ev.Call("preventDefault")
			sink.Send(app.FilterEvent{ID: f.Call("getAttribute", pages.AttrFilter).String()})
			return
		}
		if !closest(target, "["+pages.AttrMenu+"]").IsNull() {
			sink.Send(app.MenuEvent{})
		}
	})

	l.on("input", func(ev js.Value) {
		target := ev.Get("target")
		if closest(target, "#"+pages.FormID).IsNull() {
			return
		}
		sink.Send(app.FieldEvent{Name: target.Get("name").String(), Value: target.Get("value").String()})
	})

	l.on("submit", func(ev js.Value) {
		if ev.Get("target").Get("id").String() != pages.FormID {
			return
		}
		ev.Call("preventDefault")
		sink.Send(app.SubmitEvent{})
	})

	l.onWindow("popstate", nil, func() {
		path := d.window.Get("location").Get("pathname").String()
		s, ok := view.ParsePath(path)
		if !ok {
			s = view.Initial()
		}
		sink.Send(app.NavigateEvent{State: s, Origin: view.OriginHistory})
	})

	scrolled := func() { sink.Send(app.ScrollEvent{Y: d.window.Get("scrollY").Float()}) }
	l.onWindow("scroll", map[string]any{"passive": true}, scrolled)
	scrolled()

	return l
}

func (l *Listeners) onWindow(event string, options map[string]any, fn func()) {
	f := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	l.winFunc[event] = f
	if options != nil {
		l.window.Call("addEventListener", event, f, options)
		return
	}
	l.window.Call("addEventListener", event, f)
}

func (l *Listeners) on(event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	l.funcs[event] = f
	l.target.Call("addEventListener", event, f)
}

// Release removes every handler.
func (l *Listeners) Release() {
	for event, f := range l.funcs {
		l.target.Call("removeEventListener", event, f)
		f.Release()
	}
	clear(l.funcs)
	for event, f := range l.winFunc {
		l.window.Call("removeEventListener", event, f)
		f.Release()
	}
	clear(l.winFunc)
}

func closest(v js.Value, selector string) js.Value {
	if v.IsNull() || v.IsUndefined() || v.Get("closest").IsUndefined() {
		return js.Null()
	}
	return v.Call("closest", selector)
}

// modified reports a click the browser should handle itself, like opening a new tab.
func modified(ev js.Value) bool {
	return ev.Get("ctrlKey").Bool() || ev.Get("metaKey").Bool() || ev.Get("shiftKey").Bool() || ev.Get("button").Int() != 0
}
