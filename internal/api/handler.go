package api

import (
	"complaint-intake-backend/internal/dialog"
	"complaint-intake-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store  store.Store
	engine *dialog.Engine
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, engine *dialog.Engine) *Handler {
	return &Handler{
		store:  s,
		engine: engine,
	}
}
