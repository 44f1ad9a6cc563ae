package ui

import (
	"sync"
	"time"
)

// Message is a status line message with the time it was shown
type Message struct {
	Text      string
	Timestamp time.Time
}

// MessageLogger keeps the last few status messages for the help overlay
type MessageLogger struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
}

// NewMessageLogger creates a logger holding at most maxSize messages
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
	}
}

// AddMessage records text. Empty messages are ignored.
func (ml *MessageLogger) AddMessage(text string) {
	if text == "" {
		return
	}
	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, Message{Text: text, Timestamp: time.Now()})
	if over := len(ml.messages) - ml.maxSize; over > 0 {
		ml.messages = append(ml.messages[:0], ml.messages[over:]...)
	}
}

// GetMessagesReverse returns the messages newest first
func (ml *MessageLogger) GetMessagesReverse() []Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]Message, len(ml.messages))
	for i, msg := range ml.messages {
		result[len(ml.messages)-1-i] = msg
	}
	return result
}

// Clear drops all messages
func (ml *MessageLogger) Clear() {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.messages = ml.messages[:0]
}

// Count returns the number of stored messages
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}
