// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build js && wasm

// Command pixelflame-web is the browser client, built with GOOS=js GOARCH=wasm.
// boot.js passes the store location through the environment.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/olegiv/pixelflame/internal/app"
	"github.com/olegiv/pixelflame/internal/content"
	"github.com/olegiv/pixelflame/internal/dom"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := content.LoadConfig()
	if err != nil {
		logger.Error("invalid client configuration", "error", err)
		return
	}
	store, err := content.NewClient(cfg)
	if err != nil {
		logger.Error("failed to create store client", "error", err)
		return
	}

	doc := dom.New()
	a := app.New(app.Config{
		Platform: doc,
		Store:    store,
		Logger:   logger,
	})
	listeners := doc.Listen(a)
	defer listeners.Release()

	// The page lives as long as the tab; Run never returns on its own.
	if err := a.Run(context.Background()); err != nil {
		logger.Error("client stopped", "error", err)
	}
}
