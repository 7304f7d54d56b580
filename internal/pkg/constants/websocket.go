package constants

// WebSocket event types (client -> hub)
const (
	EventJoinRoom          = "join-room"
	EventLeaveRoom         = "leave-room"
	EventJoinCallCenter    = "join-call-center"
	EventUpdateAgentStatus = "update-agent-status"
	EventAcceptCall        = "accept-call"
	EventEndCall           = "end-call"
	EventTransferCall      = "transfer-call"
	EventAuthenticated     = "authenticated-event"
)

// WebSocket event types (hub -> client)
const (
	EventWelcome            = "welcome"
	EventRoomJoined         = "room-joined"
	EventRoomLeft           = "room-left"
	EventAgentStatusUpdated = "agent-status-updated"
	EventCallIncoming       = "call-incoming"
	EventCallConnected      = "call-connected"
	EventCallEnded          = "call-ended"
	EventCallTransferred    = "call-transferred"
	EventQueueUpdated       = "queue-updated"
	EventError              = "error"
)

// CallCenterRoom is the room agents join via join-call-center
const CallCenterRoom = "call-center"

// WebSocket error codes
const (
	ErrorInvalidFormat = "invalid_format"
	ErrorAuthRequired  = "auth_required"
	ErrorInternalError = "internal_error"
)
