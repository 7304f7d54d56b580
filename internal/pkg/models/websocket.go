package models

import "encoding/json"

// WSMessage represents a WebSocket message envelope
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WelcomePayload is sent to every connection once it is admitted
type WelcomePayload struct {
	Message       string      `json:"message"`
	SocketID      string      `json:"socketId"`
	Authenticated bool        `json:"authenticated"`
	User          *UserClaims `json:"user,omitempty"`
}

// RoomPayload carries the room name on join/leave confirmations
type RoomPayload struct {
	Room string `json:"room"`
}
