package relay

import "time"

// InboundMessage is a transport-neutral user message.
type InboundMessage struct {
	UpdateID int64
	ChatID   int64
	UserKey  string
	Text     string
}

// AckStatus is informational; the transport answers every update the same way.
type AckStatus string

const (
	AckAccepted AckStatus = "accepted"
	AckIgnored  AckStatus = "ignored"
	AckDropped  AckStatus = "dropped"
)

// Ack is returned for every inbound message.
type Ack struct {
	Status AckStatus `json:"status"`
}

type Config struct {
	VisitorTimeout time.Duration
	MaxPending     int
}

const DefaultVisitorTimeout = 5 * time.Second
