// Package mailbox reads inbound request emails. A Mailbox is addressed by
// (server, folder, uid), the same tuple that marks a message as processed.
package mailbox

import (
	"context"
	"errors"
	"strings"
)

// ErrMailQuery wraps connection, listing and search failures. Any error
// carrying it aborts a whole poll run.
var ErrMailQuery = errors.New("mailbox query failed")

// Query selects messages by recipient and subject tag.
type Query struct {
	To      string
	Subject string
}

// Match reports whether m is addressed to q.To and carries q.Subject.
// Both comparisons are case-insensitive; empty fields match anything.
func (q Query) Match(m Message) bool {
	if q.Subject != "" && !strings.Contains(strings.ToLower(m.Subject), strings.ToLower(q.Subject)) {
		return false
	}
	if q.To == "" {
		return true
	}
	for _, to := range m.To {
		if strings.EqualFold(to, q.To) {
			return true
		}
	}
	return false
}

type Message struct {
	UID     string
	Subject string
	From    string
	To      []string
	Body    string // HTML when present, otherwise plain text
}

type Mailbox interface {
	Server() string
	Folder() string

	// Search returns the UIDs of messages matching q, in mailbox order.
	Search(ctx context.Context, q Query) ([]string, error)

	// Fetch returns full messages for uids, in the same order.
	Fetch(ctx context.Context, uids []string) ([]Message, error)
}
