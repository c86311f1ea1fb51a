package http

import (
	"net/http"

	"worktrack-backend/internal/usecase/membership"
	"worktrack-backend/pkg/id"

	"github.com/labstack/echo/v4"
)

type MembershipHandler struct{ uc *membership.Usecase }

func NewMembershipHandler(uc *membership.Usecase) *MembershipHandler {
	return &MembershipHandler{uc: uc}
}

type setMemberReq struct {
	ProjectRole string `json:"project_role" validate:"required,oneof=lead manager owner member"`
}

// SetMember handles PUT /projects/:project_id/members/:user_id.
func (h *MembershipHandler) SetMember(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	projectID, userID := c.Param("project_id"), c.Param("user_id")
	if !id.Valid(projectID) || !id.Valid(userID) {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "invalid project or user id"})
	}
	var req setMemberReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	m, err := h.uc.SetMember(c.Request().Context(), actor, projectID, userID, req.ProjectRole)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"project_id":   m.ProjectID,
		"user_id":      m.UserID,
		"project_role": m.ProjectRole,
	})
}
