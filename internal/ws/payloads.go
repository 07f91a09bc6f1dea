package ws

import "telegram_initdata/internal/initdata"

// Envelope is every frame a client sends.
type Envelope struct {
	Type     string `json:"type"`
	InitData string `json:"init_data,omitempty"`
}

// AuthResultPayload answers an auth frame. On failure Reason carries the
// error kind, e.g. "expired" or "invalid_signature".
type AuthResultPayload struct {
	Type     string             `json:"type"`
	OK       bool               `json:"ok"`
	InitData *initdata.InitData `json:"init_data,omitempty"`
	Error    string             `json:"error,omitempty"`
	Reason   string             `json:"reason,omitempty"`
}

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
