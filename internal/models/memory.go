package models

import "sync"

// QA is one answered turn kept in conversation memory.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ConversationMemory is a bounded FIFO window of prior turns, shared across
// requests in assist mode. It lives in memory only and is never persisted.
// Appends are serialized; the hosting server may handle requests concurrently.
type ConversationMemory struct {
	mu      sync.Mutex
	cap     int
	entries []QA
}

func NewConversationMemory(capacity int) *ConversationMemory {
	if capacity <= 0 {
		capacity = 5
	}
	return &ConversationMemory{cap: capacity}
}

// Append records an answered turn, evicting the oldest past capacity.
func (m *ConversationMemory) Append(question, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, QA{Question: question, Answer: answer})
	if len(m.entries) > m.cap {
		m.entries = m.entries[len(m.entries)-m.cap:]
	}
}

// Window returns a copy of the retained turns, oldest first.
func (m *ConversationMemory) Window() []QA {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]QA, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *ConversationMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
