package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/aurapass/kiosk-services/internal/comm"
	"github.com/aurapass/kiosk-services/internal/scansvc/engine"
	"github.com/aurapass/kiosk-services/internal/scansvc/models"
	"github.com/aurapass/kiosk-services/internal/scansvc/service"
)

// Broker consumes scan jobs from the kiosk queue, runs each through the
// decision engine under a per-member row lock, and publishes the outcome
// to the monitor screen and the admin channel.
type Broker struct {
	Conn                *nats.Conn
	db                  *pgxpool.Pool
	MemberService       *service.MemberService
	SessionService      *service.SessionService
	SettingsService     *service.SettingsService
	NotificationService *service.NotificationService
}

func NewBroker(nc *nats.Conn, db *pgxpool.Pool, memberService *service.MemberService,
	sessionService *service.SessionService, settingsService *service.SettingsService,
	notificationService *service.NotificationService) *Broker {
	return &Broker{
		Conn:                nc,
		db:                  db,
		MemberService:       memberService,
		SessionService:      sessionService,
		SettingsService:     settingsService,
		NotificationService: notificationService,
	}
}

// SubscribeScanQueue joins the worker queue group. NATS delivers each scan
// job to exactly one worker in the group.
func (b *Broker) SubscribeScanQueue(topic, queueGroup string) (*nats.Subscription, error) {
	sub, err := b.Conn.QueueSubscribe(topic, queueGroup, b.handleScan)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// Publish sends a payload on a topic.
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

func (b *Broker) handleScan(msgNat *nats.Msg) {
	job := comm.ScanJob{}
	err := json.Unmarshal(msgNat.Data, &job)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	log.Infof("processing scan %s (code %s), queued for %s", job.RequestId, job.Code, now.Sub(job.ScannedAt))

	out, err := b.processScan(ctx, job, now)
	if err != nil {
		// Infrastructure failure: nothing was committed, the queue layer
		// owns redelivery.
		log.Errorf("Error processing scan %s (code %s): %s", job.RequestId, job.Code, err)
		return
	}

	b.publishMonitorEvent(out, now)

	if out.Kind == engine.Ignored {
		// Debounced double-taps stay out of the admin feed.
		return
	}
	b.dispatchAdminNotice(ctx, job, out, now)
}

// processScan runs the decision and its session side effect in one
// transaction. The SELECT ... FOR UPDATE on the member row serializes
// scans per member: the read-then-write on the session ledger can never
// interleave with a concurrent scan of the same code, while scans for
// different members proceed in parallel.
func (b *Broker) processScan(ctx context.Context, job comm.ScanJob, now time.Time) (engine.Outcome, error) {
	cfg, err := b.SettingsService.Snapshot(ctx)
	if err != nil {
		return engine.Outcome{}, err
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return engine.Outcome{}, err
	}
	defer tx.Rollback(ctx)

	member, err := b.MemberService.ResolveForScan(ctx, tx, job.Code)
	if err != nil {
		return engine.Outcome{}, err
	}

	var open *models.Session
	if member != nil {
		open, err = b.SessionService.FindOpen(ctx, tx, member.ID, now, cfg.AutoCheckoutWindow())
		if err != nil {
			return engine.Outcome{}, err
		}
	}

	out := engine.Decide(member, open, now, cfg, job.Force)

	switch out.Kind {
	case engine.CheckedIn:
		sess, err := b.SessionService.Open(ctx, tx, member.ID, now)
		if err != nil {
			return engine.Outcome{}, err
		}
		out.Session = sess
	case engine.CheckedOut:
		if err := b.SessionService.Close(ctx, tx, out.Session.ID, now); err != nil {
			return engine.Outcome{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return engine.Outcome{}, err
	}

	return out, nil
}

func (b *Broker) publishMonitorEvent(out engine.Outcome, now time.Time) {
	ev := MonitorEventFor(out, now)

	bytes, err := json.Marshal(ev)
	if err != nil {
		log.Errorf("Failed to marshal monitor event: %v", err)
		return
	}

	if err := b.Publish(comm.TopicMonitor, bytes); err != nil {
		log.Errorf("Failed to publish monitor event: %v", err)
	}
}

func (b *Broker) dispatchAdminNotice(ctx context.Context, job comm.ScanJob, out engine.Outcome, now time.Time) {
	notice, ok := NoticeFor(out, job.Code, now)
	if !ok {
		return
	}

	// Persist one copy per admin, then push the live broadcast.
	if err := b.NotificationService.Dispatch(ctx, notice); err != nil {
		log.Errorf("Failed to persist admin notifications: %v", err)
	}

	bytes, err := json.Marshal(notice)
	if err != nil {
		log.Errorf("Failed to marshal admin notice: %v", err)
		return
	}

	if err := b.Publish(comm.TopicAdminNotice, bytes); err != nil {
		log.Errorf("Failed to publish admin notice: %v", err)
	}
}
