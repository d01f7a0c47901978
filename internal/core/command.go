package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinChat establishes the session's username.
	CommandJoinChat CommandKind = iota
	// CommandSendMessage broadcasts a chat message to all participants.
	CommandSendMessage
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Username string // for CommandJoinChat
	Text     string // for CommandSendMessage
}
