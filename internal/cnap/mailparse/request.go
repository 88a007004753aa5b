package mailparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
)

// Account request keys.
const (
	KeyFirstName          = "FIRST_NAME"
	KeyLastName           = "LAST_NAME"
	KeyEmail              = "EMAIL"
	KeyPhone              = "PHONE"
	KeyPI                 = "PI"
	KeyPIFirstName        = "PI_FIRST_NAME"
	KeyPILastName         = "PI_LAST_NAME"
	KeyPIEmail            = "PI_EMAIL"
	KeyPIPhone            = "PI_PHONE"
	KeyHarvardAppointment = "HARVARD_APPOINTMENT"
	KeyOrganization       = "ORGANIZATION"
	KeyDepartment         = "DEPARTMENT"
	KeyFinancialContact   = "FINANCIAL_CONTACT"
	KeyFinancialEmail     = "FINANCIAL_EMAIL"
	KeyAddress            = "ADDRESS"
	KeyCity               = "CITY"
	KeyState              = "STATE"
	KeyPostalCode         = "POSTAL_CODE"
	KeyCountry            = "COUNTRY"
)

// Pipeline request keys.
const (
	KeyPipeline    = "PIPELINE"
	KeyQuantity    = "QUANTITY"
	KeyPaymentCode = "PAYMENT_CODE"
)

var AccountSchema = Schema{Required: []string{
	KeyFirstName, KeyLastName, KeyEmail, KeyPhone, KeyPI,
	KeyPIFirstName, KeyPILastName, KeyPIEmail, KeyPIPhone,
	KeyHarvardAppointment, KeyOrganization, KeyDepartment,
	KeyFinancialContact, KeyFinancialEmail,
	KeyAddress, KeyCity, KeyState, KeyPostalCode, KeyCountry,
}}

var PipelineSchema = Schema{
	Required: []string{KeyEmail, KeyPIEmail, KeyPipeline, KeyQuantity},
	Optional: []string{KeyPaymentCode},
}

// ParseAccountRequest parses an account-request body.
func ParseAccountRequest(body string) (domain.AccountRequest, error) {
	f, err := Extract(body, AccountSchema)
	if err != nil {
		return domain.AccountRequest{}, err
	}

	isPI, err := parseYesNo(KeyPI, f[KeyPI], false)
	if err != nil {
		return domain.AccountRequest{}, err
	}
	harvard, err := parseYesNo(KeyHarvardAppointment, f[KeyHarvardAppointment], true)
	if err != nil {
		return domain.AccountRequest{}, err
	}

	req := domain.AccountRequest{
		FirstName:          f[KeyFirstName],
		LastName:           f[KeyLastName],
		Email:              normalizeEmail(f[KeyEmail]),
		Phone:              f[KeyPhone],
		IsPI:               isPI,
		PIFirstName:        f[KeyPIFirstName],
		PILastName:         f[KeyPILastName],
		PIEmail:            normalizeEmail(f[KeyPIEmail]),
		PIPhone:            f[KeyPIPhone],
		HarvardAppointment: harvard,
		Organization:       f[KeyOrganization],
		Department:         f[KeyDepartment],
		FinancialContact:   f[KeyFinancialContact],
		FinancialEmail:     normalizeEmail(f[KeyFinancialEmail]),
		Address:            f[KeyAddress],
		City:               f[KeyCity],
		State:              f[KeyState],
		PostalCode:         f[KeyPostalCode],
		Country:            f[KeyCountry],
	}

	if req.Email == "" {
		return domain.AccountRequest{}, fmt.Errorf("%w: %s is empty", ErrParse, KeyEmail)
	}
	if req.PIEmail == "" {
		return domain.AccountRequest{}, fmt.Errorf("%w: %s is empty", ErrParse, KeyPIEmail)
	}
	return req, nil
}

// ParsePipelineRequest parses a pipeline-order body.
func ParsePipelineRequest(body string) (domain.PipelineRequest, error) {
	f, err := Extract(body, PipelineSchema)
	if err != nil {
		return domain.PipelineRequest{}, err
	}

	qty, err := strconv.ParseInt(f[KeyQuantity], 10, 64)
	if err != nil || qty <= 0 {
		return domain.PipelineRequest{}, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrParse, KeyQuantity, f[KeyQuantity])
	}
	if qty > domain.MaxOrderQuantity {
		return domain.PipelineRequest{}, fmt.Errorf("%w: %s may not exceed %d, got %d", ErrParse, KeyQuantity, domain.MaxOrderQuantity, qty)
	}

	req := domain.PipelineRequest{
		Email:       normalizeEmail(f[KeyEmail]),
		PIEmail:     normalizeEmail(f[KeyPIEmail]),
		Product:     f[KeyPipeline],
		Quantity:    qty,
		PaymentCode: f[KeyPaymentCode],
	}
	if req.Email == "" || req.PIEmail == "" || req.Product == "" {
		return domain.PipelineRequest{}, fmt.Errorf("%w: %s, %s and %s must be set", ErrParse, KeyEmail, KeyPIEmail, KeyPipeline)
	}
	return req, nil
}

// parseYesNo reads the first letter of a y/n answer. An empty answer is
// "no" only when allowEmpty is set.
func parseYesNo(key, v string, allowEmpty bool) (bool, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "" && allowEmpty:
		return false, nil
	case strings.HasPrefix(v, "y"):
		return true, nil
	case strings.HasPrefix(v, "n"):
		return false, nil
	}
	return false, fmt.Errorf("%w: %s must be yes or no, got %q", ErrParse, key, v)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
