package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

var ErrUnknownKind = errors.New("unknown notification kind")

// Notification is a catalog message addressed to one recipient.
type Notification struct {
	Kind Kind
	To   string
	Args []any
}

type Config struct {
	From          string
	Facility      string   // signature line, e.g. "CNAP Team"
	StaffEmails   []string // targets of NotifyStaff
	TestAddresses []string // recipients that are logged, never delivered
}

type Notifier struct {
	mailer   Mailer
	from     string
	facility string
	staff    []string
	test     map[string]struct{}
}

func NewNotifier(m Mailer, cfg Config) *Notifier {
	n := &Notifier{
		mailer:   m,
		from:     cfg.From,
		facility: cfg.Facility,
		staff:    cfg.StaffEmails,
		test:     make(map[string]struct{}, len(cfg.TestAddresses)),
	}
	if n.facility == "" {
		n.facility = "CNAP Team"
	}
	for _, a := range cfg.TestAddresses {
		n.test[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	return n
}

// Send renders n from the catalog and delivers it.
func (n *Notifier) Send(ctx context.Context, note Notification) error {
	if _, ok := catalog[note.Kind]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, note.Kind)
	}
	subject := printer.Sprintf(subjectKey(note.Kind))
	body := printer.Sprintf(bodyKey(note.Kind), note.Args...)
	return n.deliver(ctx, note.To, subject, body)
}

// NotifyStaff sends message to every staff address. Delivery continues past
// individual failures; the joined error is returned.
func (n *Notifier) NotifyStaff(ctx context.Context, message, subject string) error {
	if len(n.staff) == 0 {
		slogx.FromContext(ctx).WarnContext(ctx, "no staff addresses configured, dropping notice",
			"subject", subject,
		)
		return nil
	}
	var errs []error
	for _, to := range n.staff {
		if err := n.deliver(ctx, to, subject, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *Notifier) deliver(ctx context.Context, to, subject, body string) error {
	log := slogx.FromContext(ctx)

	if _, ok := n.test[strings.ToLower(to)]; ok {
		log.InfoContext(ctx, "skipping delivery to test address", "to", to, "subject", subject)
		return nil
	}

	html, err := renderHTML(body, n.facility)
	if err != nil {
		return err
	}
	e := Email{
		From:     n.from,
		To:       to,
		Subject:  subject,
		TextBody: body + "\n\n- " + n.facility + "\n",
		HTMLBody: html,
	}
	if err := n.mailer.Send(ctx, e); err != nil {
		log.ErrorContext(ctx, "email delivery failed", "to", to, "subject", subject, "error", err)
		return err
	}
	log.DebugContext(ctx, "email sent", "to", to, "subject", subject)
	return nil
}

var htmlTemplate = template.Must(template.New("email").Parse(`<html>
<body>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}<p>- {{.Facility}}</p>
</body>
</html>
`))

func renderHTML(body, facility string) (string, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Paragraphs []string
		Facility   string
	}{
		Paragraphs: strings.Split(body, "\n\n"),
		Facility:   facility,
	})
	return buf.String(), err
}

// Links builds the approval URLs embedded in emails.
type Links struct {
	BaseURL string
}

func (l Links) StaffApproval(id string) string {
	return l.join("/v1/approvals/staff/" + url.PathEscape(id))
}

func (l Links) PIApproval(token string) string {
	return l.join("/v1/approvals/pi/" + url.PathEscape(token))
}

func (l Links) join(p string) string {
	return strings.TrimRight(l.BaseURL, "/") + p
}
