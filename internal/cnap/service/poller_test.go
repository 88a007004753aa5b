package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/mailbox"
	"github.com/aussiebroadwan/cnap/internal/cnap/notify"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	testWait = 2 * time.Second
	testTick = 10 * time.Millisecond

	facilityAddr    = "cnap@facility.org"
	accountSubject  = "CNAP account request"
	pipelineSubject = "CNAP pipeline request"
)

// fakeMailbox serves messages from memory.
type fakeMailbox struct {
	mu        sync.Mutex
	msgs      []mailbox.Message
	searchErr error
	searches  int
	fetches   int
}

func (m *fakeMailbox) Server() string { return "fake://mail" }
func (m *fakeMailbox) Folder() string { return "INBOX" }

func (m *fakeMailbox) Search(_ context.Context, q mailbox.Query) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	var uids []string
	for _, msg := range m.msgs {
		if q.Match(msg) {
			uids = append(uids, msg.UID)
		}
	}
	return uids, nil
}

func (m *fakeMailbox) Fetch(_ context.Context, uids []string) ([]mailbox.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	out := make([]mailbox.Message, 0, len(uids))
	for _, uid := range uids {
		found := false
		for _, msg := range m.msgs {
			if msg.UID == uid {
				out = append(out, msg)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: no message %s", mailbox.ErrMailQuery, uid)
		}
	}
	return out, nil
}

func (m *fakeMailbox) add(uid, subject, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, mailbox.Message{UID: uid, Subject: subject, To: []string{facilityAddr}, Body: body})
}

func (m *fakeMailbox) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

func (m *fakeMailbox) setBody(uid, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.msgs {
		if m.msgs[i].UID == uid {
			m.msgs[i].Body = body
		}
	}
}

func formBody(fields ...string) string {
	return "<html><body>\n" + strings.Join(fields, "\n") + "\n</body></html>"
}

func accountBody(r domain.AccountRequest) string {
	yes := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	return formBody(
		"FIRST_NAME:"+r.FirstName,
		"LAST_NAME:"+r.LastName,
		"EMAIL:"+r.Email,
		"PHONE:"+r.Phone,
		"PI:"+yes(r.IsPI),
		"PI_FIRST_NAME:"+r.PIFirstName,
		"PI_LAST_NAME:"+r.PILastName,
		"PI_EMAIL:"+r.PIEmail,
		"PI_PHONE:"+r.PIPhone,
		"HARVARD_APPOINTMENT:"+yes(r.HarvardAppointment),
		"ORGANIZATION:"+r.Organization,
		"DEPARTMENT:"+r.Department,
		"FINANCIAL_CONTACT:"+r.FinancialContact,
		"FINANCIAL_EMAIL:"+r.FinancialEmail,
		"ADDRESS:"+r.Address,
		"CITY:"+r.City,
		"STATE:"+r.State,
		"POSTAL_CODE:"+r.PostalCode,
		"COUNTRY:"+r.Country,
	)
}

func pipelineBody(email string) string {
	return formBody("EMAIL:"+email, "PI_EMAIL:"+piEmail, "PIPELINE:RNA-Seq", "QUANTITY:2")
}

func newTestPoller(t *testing.T, mb *fakeMailbox) (*Poller, *recordingNotifier) {
	t.Helper()
	st := newTestStore(t)
	n := &recordingNotifier{}
	return &Poller{
		Store:         st,
		Mailbox:       mb,
		Accounts:      &AccountService{Store: st, Notifier: n, Now: testNow},
		Pipelines:     &PipelineService{Store: st, Notifier: n, Projects: &fakeProjects{}, Now: testNow},
		Notifier:      n,
		Logger:        slogx.Discard(),
		AccountQuery:  mailbox.Query{To: facilityAddr, Subject: accountSubject},
		PipelineQuery: mailbox.Query{To: facilityAddr, Subject: pipelineSubject},
		Workers:       1,
	}, n
}

func processed(t *testing.T, p *Poller, uid string) bool {
	t.Helper()
	ok, err := p.Store.ProcessedEmails().IsProcessed(testContext(), p.Mailbox.Server(), p.Mailbox.Folder(), uid)
	require.NoError(t, err)
	return ok
}

func TestPollerProcessesEachMessageOnce(t *testing.T) {
	ctx := testContext()
	mb := &fakeMailbox{}
	mb.add("1", accountSubject, accountBody(postdocRequest()))
	mb.add("2", pipelineSubject, pipelineBody("stranger@lab.org"))
	mb.add("3", "Lunch on Friday?", "hi")
	p, n := newTestPoller(t, mb)

	require.NoError(t, p.RunOnce(ctx))
	require.True(t, processed(t, p, "1"))
	require.True(t, processed(t, p, "2"))
	require.False(t, processed(t, p, "3"))

	require.Equal(t, 1, count(t, p.Store.PendingUsers().ListPendingUsers))
	require.Equal(t, []string{"stranger@lab.org"}, n.sentTo(notify.RegisterFirst))
	require.Equal(t, []string{"New CNAP account request"}, n.staffSubjects())

	// A second run finds nothing new to do.
	n.reset()
	require.NoError(t, p.RunOnce(ctx))
	require.Equal(t, 1, count(t, p.Store.PendingUsers().ListPendingUsers))
	require.Empty(t, n.sent)
	require.Empty(t, n.staff)
}

func TestPollerParseFailureReleasesClaim(t *testing.T) {
	ctx := testContext()
	mb := &fakeMailbox{}
	mb.add("7", accountSubject, formBody("FIRST_NAME:Sam"))
	p, n := newTestPoller(t, mb)

	require.NoError(t, p.RunOnce(ctx))
	require.False(t, processed(t, p, "7"))
	require.Equal(t, []string{staffErrorSubject}, n.staffSubjects())
	require.Contains(t, n.staff[0].Message, "7")
	require.Equal(t, 0, count(t, p.Store.PendingUsers().ListPendingUsers))

	// Once the message is readable the next run picks it up.
	mb.setBody("7", accountBody(postdocRequest()))
	n.reset()
	require.NoError(t, p.RunOnce(ctx))
	require.True(t, processed(t, p, "7"))
	require.Equal(t, 1, count(t, p.Store.PendingUsers().ListPendingUsers))
}

func TestPollerSkipsProcessedBeforeFetch(t *testing.T) {
	ctx := testContext()
	mb := &fakeMailbox{}
	mb.add("1", accountSubject, accountBody(postdocRequest()))
	mb.add("2", pipelineSubject, pipelineBody("stranger@lab.org"))
	p, n := newTestPoller(t, mb)

	require.NoError(t, p.RunOnce(ctx))
	require.Equal(t, 2, mb.fetchCount())

	n.reset()
	require.NoError(t, p.RunOnce(ctx))
	require.Equal(t, 2, mb.fetchCount())
	require.Empty(t, n.sent)
}

func TestPollerParseFailureReportedOnce(t *testing.T) {
	ctx := testContext()
	mb := &fakeMailbox{}
	mb.add("7", accountSubject, formBody("FIRST_NAME:Sam"))
	p, n := newTestPoller(t, mb)

	for range 3 {
		require.NoError(t, p.RunOnce(ctx))
	}
	require.Equal(t, 3, mb.fetchCount())
	require.False(t, processed(t, p, "7"))
	require.Equal(t, []string{staffErrorSubject}, n.staffSubjects())

	// A different failure on the same message is news to staff.
	mb.setBody("7", formBody("no colon here"))
	require.NoError(t, p.RunOnce(ctx))
	require.Equal(t, []string{staffErrorSubject, staffErrorSubject}, n.staffSubjects())

	mb.setBody("7", accountBody(postdocRequest()))
	require.NoError(t, p.RunOnce(ctx))
	require.True(t, processed(t, p, "7"))
	require.Equal(t, []string{staffErrorSubject, staffErrorSubject, "New CNAP account request"}, n.staffSubjects())
	require.Empty(t, p.reported)
}

func TestPollerSearchFailureAbortsRun(t *testing.T) {
	mb := &fakeMailbox{searchErr: fmt.Errorf("%w: connection refused", mailbox.ErrMailQuery)}
	mb.add("1", accountSubject, accountBody(postdocRequest()))
	p, n := newTestPoller(t, mb)

	err := p.RunOnce(testContext())
	require.ErrorIs(t, err, mailbox.ErrMailQuery)
	require.Equal(t, 1, mb.searches)
	require.Equal(t, []string{staffErrorSubject}, n.staffSubjects())
	require.False(t, processed(t, p, "1"))
}

func TestPollerHandlerFailureKeepsClaim(t *testing.T) {
	ctx := testContext()
	mb := &fakeMailbox{}
	mb.add("9", pipelineSubject, pipelineBody("stranger@lab.org"))
	p, n := newTestPoller(t, mb)
	n.sendErr = errors.New("smtp: 421 service not available")

	require.NoError(t, p.RunOnce(ctx))
	require.True(t, processed(t, p, "9"))
	require.Equal(t, []string{staffErrorSubject}, n.staffSubjects())
	require.Contains(t, n.staff[0].Message, "421")

	n.reset()
	require.NoError(t, p.RunOnce(ctx))
	require.Empty(t, n.sent)
}

func TestPollerPanicDoesNotStopBatch(t *testing.T) {
	mb := &fakeMailbox{}
	mb.add("1", accountSubject, accountBody(postdocRequest()))
	mb.add("2", pipelineSubject, pipelineBody("stranger@lab.org"))
	p, n := newTestPoller(t, mb)
	p.Accounts = nil

	require.NoError(t, p.RunOnce(testContext()))
	require.Equal(t, []string{"stranger@lab.org"}, n.sentTo(notify.RegisterFirst))
	require.Equal(t, []string{staffErrorSubject}, n.staffSubjects())
	require.Contains(t, n.staff[0].Message, "panicked")
}

func TestPollerConcurrentWorkers(t *testing.T) {
	mb := &fakeMailbox{}
	for i := range 12 {
		mb.add(fmt.Sprint(i), pipelineSubject, pipelineBody(fmt.Sprintf("user%d@lab.org", i)))
	}
	p, n := newTestPoller(t, mb)
	p.Workers = 4

	require.NoError(t, p.RunOnce(testContext()))
	require.Len(t, n.sentTo(notify.RegisterFirst), 12)
	for i := range 12 {
		require.True(t, processed(t, p, fmt.Sprint(i)))
	}
}

func TestPollerStartStop(t *testing.T) {
	mb := &fakeMailbox{}
	mb.add("1", pipelineSubject, pipelineBody("stranger@lab.org"))
	p, n := newTestPoller(t, mb)

	p.Start()
	require.Eventually(t, func() bool { return len(n.sentTo(notify.RegisterFirst)) == 1 }, testWait, testTick)
	p.Stop()
}
