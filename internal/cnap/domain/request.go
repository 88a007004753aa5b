package domain

// AccountRequest is a parsed account-request email.
type AccountRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsPI      bool   `json:"is_pi"`

	PIFirstName string `json:"pi_first_name"`
	PILastName  string `json:"pi_last_name"`
	PIEmail     string `json:"pi_email"`
	PIPhone     string `json:"pi_phone"`

	HarvardAppointment bool   `json:"harvard_appointment"`
	Organization       string `json:"organization"`
	Department         string `json:"department"`
	FinancialContact   string `json:"financial_contact"`
	FinancialEmail     string `json:"financial_email"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	PostalCode         string `json:"postal_code"`
	Country            string `json:"country"`
}

// Requester returns the applicant as a User value.
func (r AccountRequest) Requester() User {
	return User{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Phone: r.Phone}
}

// PI returns the principal investigator as a User value.
func (r AccountRequest) PI() User {
	return User{FirstName: r.PIFirstName, LastName: r.PILastName, Email: r.PIEmail, Phone: r.PIPhone}
}

// RequesterName is the applicant's display name.
func (r AccountRequest) RequesterName() string { return r.Requester().FullName() }

// PIName is the PI's display name.
func (r AccountRequest) PIName() string { return r.PI().FullName() }

// PipelineRequest is a parsed pipeline-order email.
type PipelineRequest struct {
	Email       string `json:"email"`
	PIEmail     string `json:"pi_email"`
	Product     string `json:"product"`
	Quantity    int64  `json:"quantity"`
	PaymentCode string `json:"payment_code,omitempty"`
}

// HasPaymentCode reports whether the requester supplied a payment code.
func (r PipelineRequest) HasPaymentCode() bool { return r.PaymentCode != "" }
