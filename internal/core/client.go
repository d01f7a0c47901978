package core

// Client is a connected participant as seen by the core layer. The
// transport feeds Commands and drains Events; the hub owns everything
// else about the connection.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
	}
}
