package main

import (
	"io"
	"log/slog"
	"testing"

	"reviewhub/proj/internal/api/tasks"
	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/services"
)

func NewTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	bgTasks := tasks.New(log, 1, 10)
	return NewApplication(cfg, log, &services.Services{}, bgTasks)
}
