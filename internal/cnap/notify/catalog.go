package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind names a user-facing message in the catalog.
type Kind string

const (
	ExistingAccount    Kind = "existing_account"
	PIAuthorization    Kind = "pi_authorization"
	AccountPending     Kind = "account_pending"
	PISelfConfirmation Kind = "pi_self_confirmation"
	AccountConfirmed   Kind = "account_confirmed"
	LabCreated         Kind = "lab_created"
	RegisterFirst      Kind = "register_first"
	RegisterLab        Kind = "register_lab"
	AssociateFirst     Kind = "associate_first"
	PipelineFailed     Kind = "pipeline_failed"
	InventoryShortfall Kind = "inventory_shortfall"
	Quote              Kind = "quote"
	ResubmitPayment    Kind = "resubmit_payment"
	PaymentRejected    Kind = "payment_rejected"
)

type entry struct {
	subject string
	body    string
}

// catalog holds the English copy. Bodies take positional arguments in the
// order documented on each entry.
var catalog = map[Kind]entry{
	// name
	ExistingAccount: {
		"CNAP account request: already registered",
		"Hi %[1]s,\n\nWe received a new account request from you, but you are already registered with this lab. No further action is needed.",
	},
	// pi name, requester name, requester email, approval link
	PIAuthorization: {
		"CNAP: please authorize a new lab member",
		"Hi %[1]s,\n\n%[2]s (%[3]s) has asked to join your lab on CNAP. If you approve, follow the link below.\n\n%[4]s\n\nIf you do not recognize this request you can ignore this email.",
	},
	// requester name, pi email
	AccountPending: {
		"CNAP account request received",
		"Hi %[1]s,\n\nThanks for your account request. We have asked your PI (%[2]s) to confirm it, and we will email you once they do.",
	},
	// pi name, approval link
	PISelfConfirmation: {
		"CNAP: confirm your lab registration",
		"Hi %[1]s,\n\nYour lab registration has been reviewed. Please confirm it by following the link below.\n\n%[2]s",
	},
	// name, pi name
	AccountConfirmed: {
		"CNAP account confirmed",
		"Hi %[1]s,\n\n%[2]s has confirmed your membership. Your CNAP account is now active.",
	},
	// pi name
	LabCreated: {
		"CNAP lab registered",
		"Hi %[1]s,\n\nYour lab is now registered with CNAP. Members of your lab can request accounts, and you will be asked to approve each one.",
	},
	// email
	RegisterFirst: {
		"CNAP pipeline request: please register",
		"Hi,\n\nWe received a pipeline request from %[1]s, but there is no CNAP account for that address. Please request an account first and resubmit once it is approved.",
	},
	// pi email
	RegisterLab: {
		"CNAP pipeline request: unknown lab",
		"Hi,\n\nYour pipeline request names the PI %[1]s, but no lab is registered for that address. Please ask your PI to register the lab, or check the address, and resubmit.",
	},
	// pi email
	AssociateFirst: {
		"CNAP pipeline request: lab membership required",
		"Hi,\n\nYour account is not yet associated with the lab of %[1]s. Please request membership of that lab and resubmit once your PI approves it.",
	},
	// pipeline
	PipelineFailed: {
		"CNAP pipeline request could not be processed",
		"Hi,\n\nWe could not process your request for %[1]q. Our staff have been notified and will be in touch.",
	},
	// pipeline, requested, available
	InventoryShortfall: {
		"CNAP pipeline request: insufficient inventory",
		"Hi,\n\nYou requested %[2]d of %[1]q but only %[3]d remain. Our staff have been notified and will follow up.",
	},
	// pipeline, quantity, unit cost, total
	Quote: {
		"CNAP pipeline quote",
		"Hi,\n\nThe quote for %[2]d of %[1]q at %[3]s each is %[4]s. To proceed, resubmit the request with a payment code.",
	},
	// payment code
	ResubmitPayment: {
		"CNAP pipeline request: payment not recognized",
		"Hi,\n\nThe payment code %[1]q does not match any payment on file. Please check it and resubmit your request.",
	},
	// pipeline, reason
	PaymentRejected: {
		"CNAP pipeline request: payment rejected",
		"Hi,\n\nYour request for %[1]q could not be charged: %[2]s.",
	},
}

func subjectKey(k Kind) string { return string(k) + ".subject" }
func bodyKey(k Kind) string    { return string(k) + ".body" }

func init() {
	for k, e := range catalog {
		_ = message.SetString(language.English, subjectKey(k), e.subject)
		_ = message.SetString(language.English, bodyKey(k), e.body)
	}
}

var printer = message.NewPrinter(language.English)
