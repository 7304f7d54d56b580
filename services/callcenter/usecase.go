package callcenter

import (
	"context"

	"github.com/ringdesk/callhub/internal/pkg/models"
)

// Broadcaster fans an event out to every open streaming connection
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// CallCenterUC is the application logic consumed by the HTTP and
// WebSocket handlers.
type CallCenterUC interface {
	RequestCode(ctx context.Context, to, channel string) (*models.VerificationAttempt, error)
	VerifyCode(ctx context.Context, to, code string) (*models.VerificationAttempt, *models.AuthResponse, error)
	RefreshToken(token string) (*models.AuthResponse, error)

	UpdateAgentStatus(agentID, status string) *models.AgentStatusUpdate
	AcceptCall(agentID, callID string) *models.CallEvent
	EndCall(agentID, callID string) *models.CallEvent
	TransferCall(agentID, callID, targetAgentID string) *models.CallEvent
	SimulateIncomingCall(agentID string) *models.CallEvent
	QueueSnapshot() *models.QueueSnapshot
}
