package genx

import (
	"github.com/haivivi/agentpatterns/pkg/tags"
)

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Role string

func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the three chat roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
	Tag     string `json:"tag,omitzero" yaml:"tag,omitempty"`
}

func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

func NewTaggedMessage(role Role, content, tag string) Message {
	return Message{Role: role, Content: content, Tag: tag}
}

func System(content string) Message {
	return NewMessage(RoleSystem, content)
}

func User(content string) Message {
	return NewMessage(RoleUser, content)
}

func Assistant(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// Text returns the content as sent to the model, wrapped in Tag if set.
func (m Message) Text() string {
	return tags.Wrap(m.Tag, m.Content)
}
