// Package conversation holds the message history of a single agent run.
//
// A Conversation is strictly append-only: no entry is ever mutated, reordered
// or removed once recorded, so the history doubles as a deterministic,
// replayable audit log of the run.
package conversation

import (
	"fmt"
	"sync"

	"github.com/procurea/scdra/providers/ai"
)

// Conversation is a concurrency-safe, append-only ordered sequence of
// messages. It is the sole mutable state of a single agent run; create one
// per run and discard it when the run ends.
type Conversation struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// New returns a new, empty Conversation ready for immediate use.
func New() *Conversation {
	return &Conversation{
		messages: []ai.Message{},
	}
}

// Append stores a copy of message at the end of the history. O(1) amortised.
// It is a no-op when message is nil.
func (c *Conversation) Append(message *ai.Message) {
	if message == nil {
		return
	}

	c.mu.Lock()
	c.messages = append(c.messages, *message)
	c.mu.Unlock()
}

// Tail returns a copy of the most recently appended message, or nil when the
// conversation is empty.
func (c *Conversation) Tail() *ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.messages) == 0 {
		return nil
	}
	tail := c.messages[len(c.messages)-1]
	return &tail
}

// All returns a copy of all messages so callers can never mutate internal
// state. The returned slice is always non-nil.
func (c *Conversation) All() []ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ai.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages stored.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// FilterRole returns a copy of all messages whose role matches role, in
// order. The returned slice is always non-nil.
func (c *Conversation) FilterRole(role ai.MessageRole) []ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	filtered := make([]ai.Message, 0, len(c.messages))
	for _, msg := range c.messages {
		if msg.Role == role {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// CheckToolCallInvariant verifies that every tool call emitted by an
// assistant message is answered by exactly one tool-result message with a
// matching call ID before the next assistant message. Histories produced by
// the run loop always satisfy this; the check exists for tests and for
// validating externally supplied transcripts.
func CheckToolCallInvariant(messages []ai.Message) error {
	// Call IDs awaiting a result from the most recent assistant message.
	pending := map[string]bool{}

	for i, msg := range messages {
		switch msg.Role {
		case ai.RoleAssistant:
			if len(pending) > 0 {
				return fmt.Errorf("message %d: assistant message appended while %d tool calls are unanswered", i, len(pending))
			}
			for _, call := range msg.ToolCalls {
				if pending[call.ID] {
					return fmt.Errorf("message %d: duplicate tool call id %q", i, call.ID)
				}
				pending[call.ID] = true
			}

		case ai.RoleTool:
			if !pending[msg.ToolCallID] {
				return fmt.Errorf("message %d: tool result for unknown or already answered call id %q", i, msg.ToolCallID)
			}
			delete(pending, msg.ToolCallID)
		}
	}

	if len(pending) > 0 {
		return fmt.Errorf("history ends with %d unanswered tool calls", len(pending))
	}
	return nil
}
