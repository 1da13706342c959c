// Package api exposes the grocery-list pipeline over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/samshaps/meal-planner/internal/aggregate"
	"github.com/samshaps/meal-planner/internal/ingredient"
	"github.com/samshaps/meal-planner/internal/logging"
	"github.com/samshaps/meal-planner/internal/render"
	"github.com/samshaps/meal-planner/internal/service"
)

// NewRouter wires up all routes with the provided Service.
func NewRouter(svc *service.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Post("/grocery-list", handleBuildList(svc))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok")) //nolint:errcheck
}

// --- build list ---

type buildListRequest struct {
	Lines []string `json:"lines"`
}

type listItemResponse struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Section  string   `json:"section"`
	Display  string   `json:"display"`
	Lines    []string `json:"lines"`
}

type buildListResponse struct {
	ID        uuid.UUID          `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []listItemResponse `json:"items"`
}

func handleBuildList(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req buildListRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		list, err := svc.BuildList(r.Context(), req.Lines)
		if err != nil {
			if errors.Is(err, service.ErrNoIngredients) {
				jsonError(w, "no ingredient lines provided", http.StatusBadRequest)
				return
			}
			jsonError(w, "failed to build grocery list", http.StatusInternalServerError, err)
			return
		}

		if r.URL.Query().Get("format") == "text" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(render.Text(list.Items))) //nolint:errcheck
			return
		}

		resp := buildListResponse{
			ID:        list.ID,
			CreatedAt: list.CreatedAt,
			Items:     make([]listItemResponse, 0, len(list.Items)),
		}
		for _, it := range list.Items {
			resp.Items = append(resp.Items, toItemResponse(it))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}
}

func toItemResponse(it *ingredient.Aggregated) listItemResponse {
	resp := listItemResponse{
		Name:    it.DisplayName,
		Section: string(it.Section),
		Display: render.Line(it),
		Lines:   make([]string, 0, len(it.Lines)),
	}
	for _, line := range it.Lines {
		resp.Lines = append(resp.Lines, line.RawText)
	}
	if it.TotalQuantity != nil {
		f := aggregate.FormatQuantity(*it.TotalQuantity, it.BaseUnit, it.UnitLabel)
		q := f.Quantity
		resp.Quantity = &q
		resp.Unit = f.Unit
	}
	return resp
}

// --- helpers ---

func jsonError(w http.ResponseWriter, msg string, status int, errs ...error) {
	if status >= 500 && len(errs) > 0 {
		slog.Error(msg, "status", status, "error", errs[0])
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
