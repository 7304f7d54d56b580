package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/ringdesk/callhub/services/callcenter"
)

// CallCenterUC implements the application logic: OTP login, credential
// issuance and the mock call-queue simulation. Queue and call state is
// held in process memory only and does not survive a restart.
type CallCenterUC struct {
	verifyGW    callcenter.VerifyGW
	eventGW     callcenter.EventGW
	broadcaster callcenter.Broadcaster
	cfg         *models.Config

	mu    sync.Mutex
	queue []models.QueueEntry
}

// NewCallCenterUC creates the usecase with its collaborators. No ambient
// globals: everything is passed in at construction.
func NewCallCenterUC(
	verifyGW callcenter.VerifyGW,
	eventGW callcenter.EventGW,
	broadcaster callcenter.Broadcaster,
	cfg *models.Config,
) *CallCenterUC {
	uc := &CallCenterUC{
		verifyGW:    verifyGW,
		eventGW:     eventGW,
		broadcaster: broadcaster,
		cfg:         cfg,
		queue:       seedQueue(),
	}
	return uc
}

// seedQueue produces the initial mock queue shown on the dashboard
func seedQueue() []models.QueueEntry {
	now := time.Now()
	return []models.QueueEntry{
		{
			ID:         uuid.New().String(),
			Caller:     "+14155550142",
			WaitTime:   45,
			Priority:   "normal",
			ReceivedAt: now.Add(-45 * time.Second),
		},
		{
			ID:         uuid.New().String(),
			Caller:     "+14155550187",
			WaitTime:   120,
			Priority:   "high",
			ReceivedAt: now.Add(-2 * time.Minute),
		},
	}
}
