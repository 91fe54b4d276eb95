package amqp

import (
	"encoding/json"
	"time"
)

// EventBookedMessage carries a booked event to the ledger worker. It is
// self-contained so the worker never has to reach back into the store.
type EventBookedMessage struct {
	Code               string    `json:"code"`
	Timestamp          string    `json:"timestamp"`
	VenueCode          string    `json:"venue_code"`
	BandCode           string    `json:"band_code"`
	DurationCentiHours int64     `json:"duration_centihours"`
	TotalCostCents     int64     `json:"total_cost_cents"`
	PublishedAt        time.Time `json:"published_at"`
}

// NewEventBookedMessage stamps a message with the publish time.
func NewEventBookedMessage(code, timestamp, venueCode, bandCode string, durationCentiHours, costCents int64) *EventBookedMessage {
	return &EventBookedMessage{
		Code:               code,
		Timestamp:          timestamp,
		VenueCode:          venueCode,
		BandCode:           bandCode,
		DurationCentiHours: durationCentiHours,
		TotalCostCents:     costCents,
		PublishedAt:        time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *EventBookedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EventBookedMessageFromJSON creates a message from JSON bytes
func EventBookedMessageFromJSON(data []byte) (*EventBookedMessage, error) {
	var msg EventBookedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
