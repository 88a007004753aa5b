package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/cnap/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	sent []Email
	fail map[string]bool
}

func (c *captureMailer) Send(_ context.Context, e Email) error {
	if c.fail[e.To] {
		return errors.New("relay refused")
	}
	c.sent = append(c.sent, e)
	return nil
}

func testContext() context.Context {
	return slogx.WithContext(context.Background(), slogx.Discard())
}

func TestNotifierSend(t *testing.T) {
	m := &captureMailer{}
	n := NewNotifier(m, Config{From: "cnap@facility.org", Facility: "Genomics Core"})

	err := n.Send(testContext(), Notification{
		Kind: PIAuthorization,
		To:   "pi@lab.org",
		Args: []any{"Dana Okafor", "Sam Reyes", "sam@lab.org", "https://cnap.example/v1/approvals/pi/abc"},
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)

	e := m.sent[0]
	require.Equal(t, "pi@lab.org", e.To)
	require.Equal(t, "cnap@facility.org", e.From)
	require.Equal(t, "CNAP: please authorize a new lab member", e.Subject)
	require.Contains(t, e.TextBody, "Sam Reyes (sam@lab.org)")
	require.Contains(t, e.TextBody, "https://cnap.example/v1/approvals/pi/abc")
	require.True(t, strings.HasSuffix(e.TextBody, "- Genomics Core\n"))
	require.Contains(t, e.HTMLBody, "<p>Hi Dana Okafor,</p>")
	require.Contains(t, e.HTMLBody, "<p>- Genomics Core</p>")
}

func TestNotifierEscapesHTML(t *testing.T) {
	m := &captureMailer{}
	n := NewNotifier(m, Config{})

	require.NoError(t, n.Send(testContext(), Notification{
		Kind: ExistingAccount, To: "a@lab.org", Args: []any{"<script>x</script>"},
	}))
	require.NotContains(t, m.sent[0].HTMLBody, "<script>")
	require.Contains(t, m.sent[0].HTMLBody, "&lt;script&gt;")
}

func TestNotifierUnknownKind(t *testing.T) {
	n := NewNotifier(&captureMailer{}, Config{})
	err := n.Send(testContext(), Notification{Kind: "nope", To: "a@lab.org"})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestNotifierSkipsTestAddresses(t *testing.T) {
	m := &captureMailer{}
	n := NewNotifier(m, Config{TestAddresses: []string{" Test@Lab.org "}})

	require.NoError(t, n.Send(testContext(), Notification{Kind: LabCreated, To: "test@lab.org", Args: []any{"PI"}}))
	require.Empty(t, m.sent)
}

func TestNotifyStaff(t *testing.T) {
	m := &captureMailer{fail: map[string]bool{"down@facility.org": true}}
	n := NewNotifier(m, Config{StaffEmails: []string{"a@facility.org", "down@facility.org", "b@facility.org"}})

	err := n.NotifyStaff(testContext(), "something broke", "Error encountered")
	require.Error(t, err)
	require.Len(t, m.sent, 2)
	for _, e := range m.sent {
		require.Equal(t, "Error encountered", e.Subject)
		require.Contains(t, e.TextBody, "something broke")
	}

	empty := NewNotifier(m, Config{})
	require.NoError(t, empty.NotifyStaff(testContext(), "ignored", "subject"))
}

func TestCatalogFormatsMoney(t *testing.T) {
	m := &captureMailer{}
	n := NewNotifier(m, Config{})

	require.NoError(t, n.Send(testContext(), Notification{
		Kind: Quote, To: "a@lab.org", Args: []any{"RNA-Seq", int64(6), "$10.00", "$60.00"},
	}))
	require.Contains(t, m.sent[0].TextBody, `6 of "RNA-Seq" at $10.00 each is $60.00`)
}

func TestLinks(t *testing.T) {
	l := Links{BaseURL: "https://cnap.example/"}
	require.Equal(t, "https://cnap.example/v1/approvals/staff/01ABC", l.StaffApproval("01ABC"))
	require.Equal(t, "https://cnap.example/v1/approvals/pi/a%2Fb", l.PIApproval("a/b"))
}

func TestSMTPMailer(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	m := NewSMTPMailer(SMTPConfig{Addr: "smtp.facility.org:587", Username: "u", Password: "p", From: "cnap@facility.org"})
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotTo, gotMsg = addr, a, to, string(msg)
		return nil
	}

	require.NoError(t, m.Send(context.Background(), Email{
		To: "pi@lab.org", Subject: "Hello", TextBody: "plain body", HTMLBody: "<p>html body</p>",
	}))
	require.Equal(t, "smtp.facility.org:587", gotAddr)
	require.NotNil(t, gotAuth)
	require.Equal(t, []string{"pi@lab.org"}, gotTo)
	require.Contains(t, gotMsg, "From: cnap@facility.org\r\n")
	require.Contains(t, gotMsg, "Content-Type: multipart/alternative;")
	require.Contains(t, gotMsg, "plain body")
	require.Contains(t, gotMsg, "<p>html body</p>")
}

func TestBuildMIMEEncodesSubject(t *testing.T) {
	raw, err := buildMIME(Email{From: "a@b", To: "c@d", Subject: "Budget ✓"}, time.Unix(0, 0))
	require.NoError(t, err)
	require.Contains(t, string(raw), "Subject: =?utf-8?q?Budget_=E2=9C=93?=")
}
