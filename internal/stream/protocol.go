package stream

const (
	EventDashboard = "dashboard"
	EventUpdate    = "update"
	EventAction    = "action"
)

// Event is one message pushed to stream clients. Data is serialized as a
// single JSON document.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

type ConnectedPayload struct {
	Message string `json:"message"`
}

type UpdatePayload struct {
	Timestamp string `json:"timestamp"`
}

type ActionPayload struct {
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

const connectedMessage = "Connected to Command Center"
