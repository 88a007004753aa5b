package domain

import "time"

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ResearchGroup is a lab, identified by its PI's email.
type ResearchGroup struct {
	ID                    string    `json:"id"`
	PIName                string    `json:"pi_name"`
	PIEmail               string    `json:"pi_email"`
	OrganizationID        string    `json:"organization_id,omitempty"` // empty when unaffiliated
	HasHarvardAppointment bool      `json:"has_harvard_appointment"`
	Department            string    `json:"department"`
	AddressLines          string    `json:"address_lines"`
	City                  string    `json:"city"`
	State                 string    `json:"state"`
	PostalCode            string    `json:"postal_code"`
	Country               string    `json:"country"`
	CreatedAt             time.Time `json:"created_at"`
}

type FinancialCoordinator struct {
	ID              string    `json:"id"`
	ResearchGroupID string    `json:"research_group_id"`
	ContactName     string    `json:"contact_name"`
	ContactEmail    string    `json:"contact_email"`
	CreatedAt       time.Time `json:"created_at"`
}
