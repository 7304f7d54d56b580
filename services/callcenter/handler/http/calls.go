package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ringdesk/callhub/internal/pkg/middleware"
	"github.com/ringdesk/callhub/internal/utils"
	"github.com/ringdesk/callhub/services/callcenter"
)

// CallHandler exposes call-lifecycle actions over HTTP. Each action
// broadcasts the corresponding event through the hub.
type CallHandler struct {
	uc callcenter.CallCenterUC
}

// NewCallHandler creates a new call handler
func NewCallHandler(uc callcenter.CallCenterUC) *CallHandler {
	return &CallHandler{uc: uc}
}

type callRequest struct {
	CallID        string `json:"callId"`
	TargetAgentID string `json:"targetAgentId"`
}

func (h *CallHandler) bindCall(c echo.Context) (*callRequest, string, error) {
	claims, ok := middleware.UserFromContext(c)
	if !ok {
		return nil, "", utils.UnauthorizedResponse(c, "Please provide a valid authentication token")
	}

	var req callRequest
	if err := c.Bind(&req); err != nil {
		return nil, "", utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.CallID == "" {
		return nil, "", utils.BadRequestResponse(c, "callId is required")
	}
	return &req, claims.PhoneNumber, nil
}

// Accept connects a call to the authenticated agent
func (h *CallHandler) Accept(c echo.Context) error {
	req, agentID, err := h.bindCall(c)
	if req == nil {
		return err
	}

	event := h.uc.AcceptCall(agentID, req.CallID)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Call accepted",
		"callId":  event.CallID,
		"agentId": event.AgentID,
		"caller":  event.Caller,
	})
}

// End terminates a call
func (h *CallHandler) End(c echo.Context) error {
	req, agentID, err := h.bindCall(c)
	if req == nil {
		return err
	}

	event := h.uc.EndCall(agentID, req.CallID)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Call ended",
		"callId":  event.CallID,
		"agentId": event.AgentID,
	})
}

// Transfer moves a call to another agent
func (h *CallHandler) Transfer(c echo.Context) error {
	req, agentID, err := h.bindCall(c)
	if req == nil {
		return err
	}
	if req.TargetAgentID == "" {
		return utils.BadRequestResponse(c, "targetAgentId is required")
	}

	event := h.uc.TransferCall(agentID, req.CallID, req.TargetAgentID)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "Call transferred",
		"callId":        event.CallID,
		"agentId":       event.AgentID,
		"targetAgentId": event.TargetAgentID,
	})
}

// Queue returns the current mock queue snapshot
func (h *CallHandler) Queue(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.QueueSnapshot())
}
