package session

// Role identifies who authored a transcript message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// LocalOnly messages are shown to the user but never sent to the model.
	LocalOnly bool `json:"local_only,omitempty"`
}
