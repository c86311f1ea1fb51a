package http

import (
	"net/http"
	"time"

	"worktrack-backend/internal/domain/permission"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Permissions returns the capability snapshot of the caller's role.
func (h *Handler) Permissions(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":     actor.ID,
		"known_role":  actor.Role.Known(),
		"permissions": permission.SnapshotFor(actor.Role),
	})
}
