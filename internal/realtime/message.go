package realtime

import "encoding/json"

// Frame type values on the trip room WebSocket.
const (
	// Client to server.
	FrameChat     = "chat"     // send a chat message
	FrameBackfill = "backfill" // request replay after a sequence number

	// Server to client.
	FrameChatMessage = "chat_message" // a persisted chat message
	FramePresence    = "presence"     // roster change in the room
	FrameTripChange  = "trip_change"  // a persisted trip list mutation
	FrameError       = "error"
)

// Frame is the wire envelope for every message on the trip room socket.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// chatPayload is the client payload for a FrameChat frame.
type chatPayload struct {
	Body string `json:"body"`
}

// backfillPayload is the client payload for a FrameBackfill frame.
// AfterSeq is the highest sequence number the client has already seen.
type backfillPayload struct {
	AfterSeq int64 `json:"after_seq"`
}

// PresenceEvent values for presence frames.
const (
	PresenceJoined = "joined"
	PresenceLeft   = "left"
)

// Member identifies one connected party member in a presence roster.
type Member struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// presencePayload is broadcast whenever the room roster changes.
type presencePayload struct {
	Event  string   `json:"event"`
	Member Member   `json:"member"`
	Roster []Member `json:"roster"`
}

// errorPayload is sent to a single client when its frame was rejected.
type errorPayload struct {
	Message string `json:"message"`
}

// encodeFrame marshals a payload into a complete wire frame.
func encodeFrame(frameType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Type: frameType, Data: data})
}
