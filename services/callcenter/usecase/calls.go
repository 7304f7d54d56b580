package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/ringdesk/callhub/internal/pkg/constants"
	"github.com/ringdesk/callhub/internal/pkg/models"
)

// UpdateAgentStatus broadcasts an agent's new status to every open
// connection. The agent identifier is the caller's authenticated identity.
func (u *CallCenterUC) UpdateAgentStatus(agentID, status string) *models.AgentStatusUpdate {
	update := &models.AgentStatusUpdate{
		AgentID:   agentID,
		Status:    status,
		Timestamp: time.Now(),
	}
	u.publish(constants.EventAgentStatusUpdated, update)
	return update
}

// AcceptCall connects a call to an agent: the call leaves the mock queue
// and a call-connected event is broadcast.
func (u *CallCenterUC) AcceptCall(agentID, callID string) *models.CallEvent {
	u.mu.Lock()
	caller := u.removeFromQueueLocked(callID)
	u.mu.Unlock()

	event := &models.CallEvent{
		CallID:    callID,
		AgentID:   agentID,
		Caller:    caller,
		Status:    "connected",
		Timestamp: time.Now(),
	}
	u.publish(constants.EventCallConnected, event)
	u.publishQueueUpdate()
	return event
}

// EndCall broadcasts the end of a call
func (u *CallCenterUC) EndCall(agentID, callID string) *models.CallEvent {
	event := &models.CallEvent{
		CallID:    callID,
		AgentID:   agentID,
		Status:    "ended",
		Timestamp: time.Now(),
	}
	u.publish(constants.EventCallEnded, event)
	return event
}

// TransferCall broadcasts a call transfer between agents
func (u *CallCenterUC) TransferCall(agentID, callID, targetAgentID string) *models.CallEvent {
	event := &models.CallEvent{
		CallID:        callID,
		AgentID:       agentID,
		TargetAgentID: targetAgentID,
		Status:        "transferred",
		Timestamp:     time.Now(),
	}
	u.publish(constants.EventCallTransferred, event)
	return event
}

// SimulateIncomingCall generates a mock incoming call for an agent and
// places it in the queue. The hub delivers the call-incoming event to the
// target connection only.
func (u *CallCenterUC) SimulateIncomingCall(agentID string) *models.CallEvent {
	entry := models.QueueEntry{
		ID:         uuid.New().String(),
		Caller:     randomCaller(),
		WaitTime:   0,
		Priority:   "normal",
		ReceivedAt: time.Now(),
	}

	u.mu.Lock()
	u.queue = append(u.queue, entry)
	u.mu.Unlock()

	u.publishQueueUpdate()

	return &models.CallEvent{
		CallID:    entry.ID,
		AgentID:   agentID,
		Caller:    entry.Caller,
		Status:    "ringing",
		Timestamp: entry.ReceivedAt,
	}
}

// QueueSnapshot returns the current state of the mock call queue
func (u *CallCenterUC) QueueSnapshot() *models.QueueSnapshot {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := time.Now()
	calls := make([]models.QueueEntry, len(u.queue))
	longest := 0
	for i, entry := range u.queue {
		entry.WaitTime = int(now.Sub(entry.ReceivedAt).Seconds())
		if entry.WaitTime > longest {
			longest = entry.WaitTime
		}
		calls[i] = entry
	}

	return &models.QueueSnapshot{
		Length:    len(calls),
		WaitTime:  longest,
		Calls:     calls,
		UpdatedAt: now,
	}
}

// removeFromQueueLocked removes a queue entry by id and returns its
// caller, or "" when the id is not queued. Caller must hold u.mu.
func (u *CallCenterUC) removeFromQueueLocked(callID string) string {
	for i, entry := range u.queue {
		if entry.ID == callID {
			u.queue = append(u.queue[:i], u.queue[i+1:]...)
			return entry.Caller
		}
	}
	return ""
}

// publish fans the event out to open connections and mirrors it to the
// external event stream when one is configured.
func (u *CallCenterUC) publish(event string, payload interface{}) {
	u.broadcaster.Broadcast(event, payload)
	u.eventGW.Publish(event, payload)
}

func (u *CallCenterUC) publishQueueUpdate() {
	u.broadcaster.Broadcast(constants.EventQueueUpdated, u.QueueSnapshot())
}

// randomCaller fabricates a plausible caller id for simulated calls
func randomCaller() string {
	id := uuid.New().String()
	digits := make([]byte, 0, 4)
	for i := 0; i < len(id) && len(digits) < 4; i++ {
		if id[i] >= '0' && id[i] <= '9' {
			digits = append(digits, id[i])
		}
	}
	for len(digits) < 4 {
		digits = append(digits, '0')
	}
	return "+1415555" + string(digits)
}
