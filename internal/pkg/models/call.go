package models

import "time"

// Agent status values mirrored from the dashboard UI
const (
	AgentStatusAvailable = "available"
	AgentStatusBusy      = "busy"
	AgentStatusBreak     = "break"
	AgentStatusOffline   = "offline"
)

// AgentStatusUpdate is broadcast when an agent changes status
type AgentStatusUpdate struct {
	AgentID   string    `json:"agentId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// CallEvent is broadcast on call lifecycle changes
type CallEvent struct {
	CallID        string    `json:"callId"`
	AgentID       string    `json:"agentId,omitempty"`
	TargetAgentID string    `json:"targetAgentId,omitempty"`
	Caller        string    `json:"caller,omitempty"`
	Status        string    `json:"status,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// QueueEntry is one waiting call in the mock queue
type QueueEntry struct {
	ID         string    `json:"id"`
	Caller     string    `json:"caller"`
	WaitTime   int       `json:"waitTime"` // seconds
	Priority   string    `json:"priority"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// QueueSnapshot is the current state of the mock call queue
type QueueSnapshot struct {
	Length    int          `json:"length"`
	WaitTime  int          `json:"waitTime"` // longest wait in seconds
	Calls     []QueueEntry `json:"calls"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
