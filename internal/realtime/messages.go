package realtime

// Client to server message types.
const (
	EventJoinRoom = "join-room"
)

// Server to client message types other than task notifications.
const (
	EventRoomJoined = "room-joined"
	EventError      = "error"
)

// Error messages sent to clients.
const (
	MsgForbiddenRoom  = "forbidden room"
	MsgUnknownEvent   = "unknown event"
	MsgMalformedFrame = "malformed message"
)

// clientMessage is a frame received from a websocket client.
type clientMessage struct {
	Event string `json:"event"`
	Room  string `json:"room,omitempty"`
}

// serverMessage is a frame sent to a websocket client.
type serverMessage struct {
	Event   string `json:"event"`
	Room    string `json:"room,omitempty"`
	Message string `json:"message,omitempty"`
}
