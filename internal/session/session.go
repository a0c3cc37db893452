// Package session defines the conversation types shared across the
// assistant: messages, per-user chat sessions, and role constants.
package session

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn. Messages are immutable once appended to
// a session.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one user's conversation. History grows append-only and is
// cleared only by explicit user action.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	Backend   string    `json:"backend"`
	Messages  []Message `json:"messages"`
}

// Append adds a turn to the session and returns the stored message.
func (s *Session) Append(role, content string) Message {
	msg := Message{Role: role, Content: content, Timestamp: time.Now()}
	s.Messages = append(s.Messages, msg)
	return msg
}
