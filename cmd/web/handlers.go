package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/histafrica/sharedkernel/application/categoryRequest"
	"github.com/histafrica/sharedkernel/application/seedwork"
	"github.com/histafrica/sharedkernel/domain/category"
	"github.com/histafrica/sharedkernel/domain/repository"
	dseedwork "github.com/histafrica/sharedkernel/domain/seedwork"
)

type categoryHandler struct {
	logger     *slog.Logger
	metrics    *metrics
	categories category.Repository
	clock      seedwork.Clock
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// list passes query strings through unparsed; paging and sorting values that
// do not make sense fall back to defaults.
func (h *categoryHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	qry := categoryRequest.ListCategoriesQuery{Search: repository.SearchParamsInput{
		Page:    q.Get("page"),
		PerPage: q.Get("per_page"),
		Sort:    q.Get("sort"),
		SortDir: q.Get("sort_dir"),
		Filter:  q.Get("filter"),
	}}
	out, err := qry.Run(r.Context(), h.categories)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *categoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var cmd categoryRequest.CreateCategoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	out, err := cmd.Run(r.Context(), h.categories, h.clock)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.categoriesCreated.Inc()
	writeJSON(w, http.StatusCreated, out)
}

func (h *categoryHandler) get(w http.ResponseWriter, r *http.Request) {
	qry := categoryRequest.GetCategoryByIdQuery{Id: chi.URLParam(r, "id")}
	out, err := qry.Run(r.Context(), h.categories)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *categoryHandler) update(w http.ResponseWriter, r *http.Request) {
	var cmd categoryRequest.UpdateCategoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	cmd.Id = chi.URLParam(r, "id")
	out, err := cmd.Run(r.Context(), h.categories)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *categoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	cmd := categoryRequest.DeleteCategoryCommand{Id: chi.URLParam(r, "id")}
	if err := cmd.Run(r.Context(), h.categories); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *categoryHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErrs seedwork.ValidationErrors
		entityErr      dseedwork.EntityValidationError
		notFoundErr    dseedwork.NotFoundError
		conflictErr    dseedwork.EntityConflictError
		identityErr    dseedwork.InvalidIdentityError
	)
	switch {
	case errors.As(err, &validationErrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error(), Errors: validationErrs.Errors})
	case errors.As(err, &entityErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Message: err.Error(), Errors: entityErr.Errors})
	case errors.As(err, &identityErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
