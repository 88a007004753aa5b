package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/mailbox"
	"github.com/aussiebroadwan/cnap/internal/cnap/mailparse"
	"github.com/aussiebroadwan/cnap/internal/cnap/metrics"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/pkg/idx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

// Request kinds, also used as metric labels.
const (
	KindAccount  = "account"
	KindPipeline = "pipeline"
)

// Poller periodically drains the mailbox of account and pipeline requests.
type Poller struct {
	Store     store.Store
	Mailbox   mailbox.Mailbox
	Accounts  *AccountService
	Pipelines *PipelineService
	Notifier  Notifier
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	AccountQuery  mailbox.Query
	PipelineQuery mailbox.Query
	Interval      time.Duration
	Workers       int // messages handled concurrently per kind; <= 1 is sequential

	stopCh chan struct{}
	doneCh chan struct{}

	mu       sync.Mutex
	reported map[string]string // kind/uid -> parse error already sent to staff
}

// Start runs RunOnce immediately and then on every tick until Stop.
func (p *Poller) Start() {
	if p.Interval <= 0 {
		p.Interval = time.Minute
	}
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	go p.run()
	p.Logger.Info("mail poller started", "interval", p.Interval, "workers", p.Workers)
}

// Stop waits for an in-progress run to finish. It is a no-op if Start was
// never called.
func (p *Poller) Stop() {
	if p.stopCh == nil {
		return
	}
	close(p.stopCh)
	<-p.doneCh
	p.Logger.Info("mail poller stopped")
}

func (p *Poller) run() {
	defer close(p.doneCh)

	ctx, cancel := context.WithCancel(slogx.WithContext(context.Background(), p.Logger))
	defer cancel()
	go func() {
		select {
		case <-p.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	_ = p.RunOnce(ctx)
	for {
		select {
		case <-ticker.C:
			_ = p.RunOnce(ctx)
		case <-p.stopCh:
			return
		}
	}
}

// RunOnce processes account requests, then pipeline requests. A mailbox
// failure aborts the run and is reported to staff once. Failures inside a
// single message are reported and do not stop the batch.
func (p *Poller) RunOnce(ctx context.Context) error {
	start := time.Now()
	log := slogx.FromContext(ctx).With(
		slog.String("server", p.Mailbox.Server()),
		slog.String("folder", p.Mailbox.Folder()),
	)
	ctx = slogx.WithContext(ctx, log)

	err := p.drain(ctx, KindAccount, p.AccountQuery)
	if err == nil {
		err = p.drain(ctx, KindPipeline, p.PipelineQuery)
	}

	result := "ok"
	if err != nil {
		result = "error"
		log.Error("poll run aborted", slog.Any("error", err))
		if !errors.Is(err, context.Canceled) {
			p.reportStaff(ctx, fmt.Sprintf("Mailbox polling failed before processing messages: %v", err))
		}
	}
	p.Metrics.PollRun(result, time.Since(start))
	return err
}

func (p *Poller) drain(ctx context.Context, kind string, q mailbox.Query) error {
	log := slogx.FromContext(ctx).With(slog.String("kind", kind))

	uids, err := p.Mailbox.Search(ctx, q)
	if err != nil {
		return fmt.Errorf("search %s requests: %w", kind, err)
	}
	if len(uids) == 0 {
		log.Warn("no matching messages", slog.String("subject", q.Subject))
		return nil
	}
	log.Debug("matched messages", slog.Int("count", len(uids)))

	var g errgroup.Group
	g.SetLimit(max(p.Workers, 1))
	for _, uid := range uids {
		done, err := p.Store.ProcessedEmails().IsProcessed(ctx, p.Mailbox.Server(), p.Mailbox.Folder(), uid)
		if err != nil {
			return fmt.Errorf("check %s message %s: %w", kind, uid, err)
		}
		if done {
			p.Metrics.EmailProcessed(kind, "skipped")
			continue
		}
		g.Go(func() error {
			p.processMessage(ctx, kind, uid)
			return nil
		})
	}
	return g.Wait()
}

// processMessage handles one message inside its own failure boundary.
func (p *Poller) processMessage(ctx context.Context, kind, uid string) {
	ctx = slogx.With(ctx, slog.String("kind", kind), slog.String("uid", uid))
	log := slogx.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while processing message",
				slog.String("panic", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
			p.Metrics.EmailProcessed(kind, "panic")
			p.reportStaff(ctx, fmt.Sprintf("Processing %s message %s panicked: %v", kind, uid, r))
		}
	}()

	// 1. Claim the message before parsing it. A concurrent poller that got
	// here first makes the insert fail on the unique key.
	mark := domain.ProcessedEmail{
		ID:          idx.New().String(),
		MailServer:  p.Mailbox.Server(),
		MailFolder:  p.Mailbox.Folder(),
		MessageUID:  uid,
		ProcessedAt: time.Now().UTC(),
	}
	if err := p.Store.ProcessedEmails().CreateProcessedEmail(ctx, mark); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Debug("message already processed")
			p.Metrics.EmailProcessed(kind, "skipped")
			return
		}
		log.Error("failed to mark message processed", slog.Any("error", err))
		p.Metrics.EmailProcessed(kind, "error")
		p.reportStaff(ctx, fmt.Sprintf("Could not mark %s message %s as processed: %v", kind, uid, err))
		return
	}

	// 2. Fetch and parse. Failing here releases the claim so the next poll retries.
	handle, err := p.parse(ctx, kind, uid)
	if err != nil {
		if derr := p.Store.ProcessedEmails().DeleteProcessedEmail(ctx, mark.ID); derr != nil {
			log.Error("failed to release processed marker", slog.Any("error", derr))
		}
		p.Metrics.EmailProcessed(kind, "parse_error")
		if !p.firstFailure(kind, uid, err.Error()) {
			log.Warn("message still unparseable, staff already notified", slog.Any("error", err))
			return
		}
		log.Error("failed to parse message, will retry", slog.Any("error", err))
		p.reportStaff(ctx, fmt.Sprintf("Could not parse %s message %s: %v", kind, uid, err))
		return
	}
	p.forgetFailure(kind, uid)

	// 3. Business logic. The message stays consumed whatever happens.
	if err := handle(ctx); err != nil {
		log.Error("failed to handle request", slog.Any("error", err))
		p.Metrics.EmailProcessed(kind, "error")
		p.reportStaff(ctx, fmt.Sprintf("Handling %s message %s failed: %v", kind, uid, err))
		return
	}
	p.Metrics.EmailProcessed(kind, "ok")
}

// parse fetches the message and returns the workflow call for it.
func (p *Poller) parse(ctx context.Context, kind, uid string) (func(context.Context) error, error) {
	msgs, err := p.Mailbox.Fetch(ctx, []string{uid})
	if err != nil {
		return nil, err
	}
	if len(msgs) != 1 {
		return nil, fmt.Errorf("fetch returned %d messages", len(msgs))
	}
	body := msgs[0].Body

	switch kind {
	case KindAccount:
		req, err := mailparse.ParseAccountRequest(body)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			_, err := p.Accounts.HandleAccountRequest(ctx, req)
			return err
		}, nil
	case KindPipeline:
		req, err := mailparse.ParsePipelineRequest(body)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			_, err := p.Pipelines.HandlePipelineRequest(ctx, req)
			return err
		}, nil
	}
	return nil, fmt.Errorf("unknown request kind %q", kind)
}

// firstFailure records a parse failure and reports whether it differs from
// the last one staff were told about for this message.
func (p *Poller) firstFailure(kind, uid, reason string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := kind + "/" + uid
	if prev, ok := p.reported[key]; ok && prev == reason {
		return false
	}
	if p.reported == nil {
		p.reported = make(map[string]string)
	}
	p.reported[key] = reason
	return true
}

func (p *Poller) forgetFailure(kind, uid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.reported, kind+"/"+uid)
}

func (p *Poller) reportStaff(ctx context.Context, message string) {
	if err := p.Notifier.NotifyStaff(ctx, message, staffErrorSubject); err != nil {
		slogx.FromContext(ctx).Error("failed to notify staff", slog.Any("error", err))
	}
}
