package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-course-tracker/internal/model"
	"go-course-tracker/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps service and storage errors to HTTP at the boundary only.
// Anything unclassified becomes an opaque 500: the details go to the server
// log, never to the client.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal Server Error"

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusBadRequest
		message = "Invalid credentials"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, model.ErrCourseNotFound):
		status = http.StatusNotFound
		message = "Course not found"
	case errors.Is(err, model.ErrUsernameTaken):
		status = http.StatusBadRequest
		message = "Username already exists"
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusBadRequest
		message = "Email already exists"
	case errors.Is(err, model.ErrInvalidToken):
		status = http.StatusForbidden
		message = "Invalid or expired token"
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Access denied. No token provided."
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		message = "Invalid input"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.MessageResponse{Message: message})
}
