package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/samshaps/meal-planner/internal/api"
	"github.com/samshaps/meal-planner/internal/config"
	"github.com/samshaps/meal-planner/internal/llm"
	"github.com/samshaps/meal-planner/internal/logging"
	"github.com/samshaps/meal-planner/internal/service"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var chat llm.Chatter
	if cfg.LLM.Enabled() {
		chat = llm.NewClient(cfg.LLM.Endpoint, cfg.LLM.APIKey,
			llm.WithModel(cfg.LLM.Model),
			llm.WithHTTPTimeout(cfg.LLM.Timeout),
		)
	} else {
		slog.Warn("LLM_API_KEY not set; interpretation and classification run on deterministic fallbacks only")
	}

	svc := service.New(chat)
	handler := api.NewRouter(svc)

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("grocery service listening", "addr", addr, "llm_enabled", cfg.LLM.Enabled())
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
