package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/brewcrew/coffeeshop/internal/auth"
	"github.com/brewcrew/coffeeshop/internal/drinks"
)

// DrinkStore is the persistence dependency of the handler.
type DrinkStore interface {
	List(ctx context.Context) ([]drinks.Drink, error)
	Get(ctx context.Context, id int64) (drinks.Drink, error)
	Insert(ctx context.Context, drink *drinks.Drink) error
	Update(ctx context.Context, drink *drinks.Drink) error
	Delete(ctx context.Context, id int64) error
}

// Handler serves the drinks API.
type Handler struct {
	store DrinkStore
}

// New mounts the drinks API onto a fresh router, guarding every route except
// the public listing with the auth middleware.
func New(store DrinkStore, authn *auth.Middleware) http.Handler {
	h := &Handler{store: store}

	r := chi.NewRouter()
	r.Get("/drinks", h.listDrinks)
	r.With(authn.Require("get:drinks-detail")).Get("/drinks-detail", h.listDrinksDetail)
	r.With(authn.Require("post:drinks")).Post("/drinks", h.createDrink)
	r.With(authn.Require("patch:drinks")).Patch("/drinks/{id}", h.updateDrink)
	r.With(authn.Require("delete:drinks")).Delete("/drinks/{id}", h.deleteDrink)
	return r
}

func (h *Handler) listDrinks(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.List(r.Context())
	if err != nil {
		log.WithField("error", err).Error("failed to list drinks")
		writeError(w, http.StatusInternalServerError)
		return
	}

	summaries := make([]drinks.Drink, 0, len(all))
	for _, drink := range all {
		summaries = append(summaries, drink.Short())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"drinks":  summaries,
	})
}

func (h *Handler) listDrinksDetail(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.List(r.Context())
	if err != nil {
		log.WithField("error", err).Error("failed to list drinks")
		writeError(w, http.StatusInternalServerError)
		return
	}

	details := make([]drinks.Drink, 0, len(all))
	for _, drink := range all {
		details = append(details, drink.Long())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"drinks":  details,
	})
}

type drinkPayload struct {
	Title  *string              `json:"title"`
	Recipe *[]drinks.RecipePart `json:"recipe"`
}

func (h *Handler) createDrink(w http.ResponseWriter, r *http.Request) {
	var payload drinkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	if payload.Title == nil || *payload.Title == "" || payload.Recipe == nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	drink := drinks.Drink{
		Title:  *payload.Title,
		Recipe: *payload.Recipe,
	}
	if err := h.store.Insert(r.Context(), &drink); err != nil {
		log.WithField("error", err).Warn("failed to create drink")
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"drinks":  []drinks.Drink{drink.Long()},
	})
}

func (h *Handler) updateDrink(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound)
		return
	}

	var payload drinkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	drink, err := h.store.Get(r.Context(), id)
	if errors.Is(err, drinks.ErrNotFound) {
		writeError(w, http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithField("error", err).Error("failed to load drink")
		writeError(w, http.StatusInternalServerError)
		return
	}

	if payload.Title != nil && *payload.Title != "" {
		drink.Title = *payload.Title
	}
	if payload.Recipe != nil {
		drink.Recipe = *payload.Recipe
	}

	if err := h.store.Update(r.Context(), &drink); err != nil {
		log.WithField("error", err).Warn("failed to update drink")
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"drinks":  []drinks.Drink{drink.Long()},
	})
}

func (h *Handler) deleteDrink(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound)
		return
	}

	err = h.store.Delete(r.Context(), id)
	if errors.Is(err, drinks.ErrNotFound) {
		writeError(w, http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithField("error", err).Error("failed to delete drink")
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"delete":  id,
	})
}
