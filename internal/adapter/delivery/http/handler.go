package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/linksnip/linksnip/internal/entity"
	"github.com/linksnip/linksnip/internal/usecase"
)

type linkUseCase interface {
	Resolve(ctx context.Context, shortCode string) (string, error)
	Shorten(ctx context.Context, params usecase.ShortenParams) (*entity.Link, error)
	Modify(ctx context.Context, shortCode, originalURL string, expiresAt *time.Time, principal string) (*entity.Link, error)
	Deactivate(ctx context.Context, shortCode, principal string) error
	GetStats(ctx context.Context, shortCode string) (*entity.Link, error)
	Search(ctx context.Context, originalURL, ownerID string) ([]*entity.Link, error)
}

type linkHandler struct {
	useCase  linkUseCase
	validate *validator.Validate
}

func newLinkHandler(useCase linkUseCase, validate *validator.Validate) *linkHandler {
	return &linkHandler{
		useCase:  useCase,
		validate: validate,
	}
}

// newValidator reports field errors under their json names so API clients see
// the fields they actually sent.
func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "pong")
}

// redirect serves the hot path: short code in, redirect out. The response is
// 302 rather than 301 so clients keep coming back and access counts stay
// meaningful.
func (h *linkHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	destination, err := h.useCase.Resolve(r.Context(), shortCode)
	if err != nil {
		h.renderResolveError(w, r, err)
		return
	}

	http.Redirect(w, r, destination, http.StatusFound)
}

func (h *linkHandler) renderResolveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrLinkNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, newErrorResponse("link not found"))
	case errors.Is(err, entity.ErrLinkExpired):
		render.Status(r, http.StatusGone)
		render.JSON(w, r, newErrorResponse("link expired"))
	case errors.Is(err, entity.ErrStorageUnavailable):
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, newErrorResponse("service unavailable"))
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newErrorResponse("server error"))
	}
}

func (h *linkHandler) shortenLink(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest

	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	link, err := h.useCase.Shorten(r.Context(), usecase.ShortenParams{
		OriginalURL: req.OriginalURL,
		CustomAlias: req.CustomAlias,
		ExpiresAt:   req.ExpiresAt,
		OwnerID:     principalFromContext(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrAliasInvalid):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, newErrorResponse("custom alias is invalid or reserved"))
		case errors.Is(err, entity.ErrShortCodeExists):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, newErrorResponse("custom alias is already taken"))
		default:
			h.renderServerError(w, r, err)
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toLinkResponse(link))
}

func (h *linkHandler) modifyLink(w http.ResponseWriter, r *http.Request) {
	var req modifyRequest

	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	shortCode := chi.URLParam(r, "shortCode")
	principal := principalFromContext(r.Context())

	link, err := h.useCase.Modify(r.Context(), shortCode, req.OriginalURL, req.ExpiresAt, principal)
	if err != nil {
		h.renderMutationError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkResponse(link))
}

func (h *linkHandler) deactivateLink(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")
	principal := principalFromContext(r.Context())

	if err := h.useCase.Deactivate(r.Context(), shortCode, principal); err != nil {
		h.renderMutationError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *linkHandler) getLinkStats(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	link, err := h.useCase.GetStats(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, entity.ErrLinkNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, newErrorResponse("link not found"))
			return
		}

		h.renderServerError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkStatsResponse(link))
}

func (h *linkHandler) searchLinks(w http.ResponseWriter, r *http.Request) {
	originalURL := r.URL.Query().Get("original_url")
	if originalURL == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newErrorResponse("original_url query parameter is required"))
		return
	}

	links, err := h.useCase.Search(r.Context(), originalURL, principalFromContext(r.Context()))
	if err != nil {
		h.renderServerError(w, r, err)
		return
	}

	resp := make([]linkResponse, 0, len(links))
	for _, link := range links {
		resp = append(resp, toLinkResponse(link))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *linkHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, newErrorResponse("empty request body"))
			return false
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newErrorResponse("invalid request body"))
		return false
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newValidationErrorResponse(err))
		return false
	}

	return true
}

func (h *linkHandler) renderMutationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrLinkNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, newErrorResponse("link not found"))
	case errors.Is(err, entity.ErrPermissionDenied):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, newErrorResponse("you do not own this link"))
	default:
		h.renderServerError(w, r, err)
	}
}

func (h *linkHandler) renderServerError(w http.ResponseWriter, r *http.Request, err error) {
	httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

	if errors.Is(err, entity.ErrStorageUnavailable) {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, newErrorResponse("service unavailable"))
		return
	}

	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, newErrorResponse("server error"))
}
