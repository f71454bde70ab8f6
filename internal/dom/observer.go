// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/olegiv/pixelflame/internal/reveal"
)

// observer adapts IntersectionObserver to reveal.Watcher.
type observer struct {
	io       js.Value
	cb       js.Func
	observed []*Element

	onEntries func([]reveal.Entry)
}

func newObserver(window js.Value, opts reveal.Options, onEntries func([]reveal.Entry)) *observer {
	o := &observer{onEntries: onEntries}
	ctor := window.Get("IntersectionObserver")
	if ctor.IsUndefined() {
		return o
	}

	o.cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		list := args[0]
		entries := make([]reveal.Entry, 0, list.Length())
		for i := range list.Length() {
			e := list.Index(i)
			if el := o.lookup(e.Get("target")); el != nil {
				entries = append(entries, reveal.Entry{
					Target:       el,
					Intersecting: e.Get("isIntersecting").Bool(),
				})
			}
		}
		if len(entries) > 0 {
			o.onEntries(entries)
		}
		return nil
	})
	o.io = ctor.New(o.cb, map[string]any{
		"threshold":  opts.Threshold,
		"rootMargin": opts.RootMargin,
	})
	return o
}

func (o *observer) Observe(el reveal.Element) {
	e, ok := el.(*Element)
	if !ok {
		return
	}
	if o.io.IsUndefined() {
		o.onEntries([]reveal.Entry{{Target: e, Intersecting: true}})
		return
	}
	o.observed = append(o.observed, e)
	o.io.Call("observe", e.v)
}

func (o *observer) Unobserve(el reveal.Element) {
	e, ok := el.(*Element)
	if !ok {
		return
	}
	for i, cur := range o.observed {
		if cur == e {
			o.observed = append(o.observed[:i], o.observed[i+1:]...)
			break
		}
	}
	if !o.io.IsUndefined() {
		o.io.Call("unobserve", e.v)
	}
}

func (o *observer) Disconnect() {
	o.observed = nil
	if o.io.IsUndefined() {
		return
	}
	o.io.Call("disconnect")
	o.cb.Release()
}

func (o *observer) lookup(target js.Value) *Element {
	for _, e := range o.observed {
		if e.v.Equal(target) {
			return e
		}
	}
	return nil
}
