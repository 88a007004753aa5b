package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CnapUser associates a User with a ResearchGroup. At most one exists per pair.
type CnapUser struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ResearchGroupID string    `json:"research_group_id"`
	JoinedAt        time.Time `json:"joined_at"`
}
