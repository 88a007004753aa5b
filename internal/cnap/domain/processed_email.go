package domain

import "time"

// ProcessedEmail marks a mailbox message as consumed.
type ProcessedEmail struct {
	ID          string
	MailServer  string
	MailFolder  string
	MessageUID  string
	ProcessedAt time.Time
}
