package http

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/linksnip/linksnip/internal/entity"
)

type shortenRequest struct {
	OriginalURL string     `json:"original_url" validate:"required,url"`
	CustomAlias string     `json:"custom_alias,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type modifyRequest struct {
	OriginalURL string     `json:"original_url" validate:"required,url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type linkResponse struct {
	ID             int64      `json:"id"`
	ShortCode      string     `json:"short_code"`
	OriginalURL    string     `json:"original_url"`
	CustomAlias    bool       `json:"custom_alias"`
	AccessCount    *int64     `json:"access_count,omitempty"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toLinkResponse(link *entity.Link) linkResponse {
	return linkResponse{
		ID:          link.ID,
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		CustomAlias: link.CustomAlias,
		ExpiresAt:   link.ExpiresAt,
		CreatedAt:   link.CreatedAt,
		UpdatedAt:   link.UpdatedAt,
	}
}

func toLinkStatsResponse(link *entity.Link) linkResponse {
	resp := toLinkResponse(link)
	resp.AccessCount = &link.AccessCount
	resp.LastAccessedAt = link.LastAccessedAt

	return resp
}

type errorResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newErrorResponse(message string) errorResponse {
	return errorResponse{
		Status:  "error",
		Message: message,
	}
}

func newValidationErrorResponse(err error) errorResponse {
	resp := errorResponse{
		Status:  "error",
		Message: "invalid values",
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			resp.Errors = append(resp.Errors, fieldError{
				Field:   fieldErr.Field(),
				Message: fieldErr.Error(),
			})
		}
	}

	return resp
}
