package socket

// Message is a command sent to a running tuitree instance
type Message struct {
	Command string `json:"command"`
	Text    string `json:"text,omitempty"`
	Target  string `json:"target,omitempty"` // Group path like "Projects/Work"; empty is the root

	// Reply carries the app's answer back to the waiting connection
	Reply chan Response `json:"-"`
}

// Response is the server's answer to a Message
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Command types
const (
	CommandAddItem  = "add_item"
	CommandAddGroup = "add_group"
	CommandSelect   = "select"
)

// Respond sends r to the waiting connection, if any
func (m Message) Respond(r Response) {
	if m.Reply != nil {
		select {
		case m.Reply <- r:
		default:
		}
	}
}
