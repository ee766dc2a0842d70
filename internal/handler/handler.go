package handler

import (
	"net/http"

	apperrors "github.com/naufal/go-antar/internal/errors"
	"github.com/naufal/go-antar/pkg/utils"
)

// handleError maps service errors onto API responses.
func handleError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*apperrors.APIError); ok {
		utils.Error(w, apiErr)
		return
	}

	switch err {
	case apperrors.ErrNotFound:
		utils.NotFound(w, "resource")
	case apperrors.ErrConflict:
		utils.Error(w, apperrors.Conflict("resource conflict"))
	case apperrors.ErrAlreadyPaid:
		utils.Error(w, apperrors.AlreadyPaid())
	default:
		utils.InternalError(w, "internal server error")
	}
}
