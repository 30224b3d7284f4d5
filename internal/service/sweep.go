package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/clock"
	"github.com/iliyamo/vessel-management/internal/model"
	"github.com/iliyamo/vessel-management/internal/queue"
)

// CertificateLister is the slice of repository.CertificateRepo the
// sweep needs.
type CertificateLister interface {
	ListExpiringBetween(ctx context.Context, from, to model.Date) ([]model.Certificate, error)
}

// DefaultReminderDays are the days before expiry on which a certificate
// is reported as expiring.
var DefaultReminderDays = []int{model.ExpiryWarningDays, 7, 1, 0}

// ExpirySweep publishes reminders for certificates approaching expiry.
// A daily run reports each certificate a bounded number of times: once on
// every reminder day and once as expired on the day after its expiry.
type ExpirySweep struct {
	Certs        CertificateLister
	Publisher    Publisher
	Clock        clock.Clock
	Log          *zap.Logger
	ReminderDays []int // nil means DefaultReminderDays
}

// due maps an expiry date to the event kind it triggers today.
func (s *ExpirySweep) due(today model.Date) map[string]string {
	days := s.ReminderDays
	if days == nil {
		days = DefaultReminderDays
	}
	out := map[string]string{today.AddDays(-1).String(): queue.KindCertificateExpired}
	for _, d := range days {
		out[today.AddDays(d).String()] = queue.KindCertificateExpiring
	}
	return out
}

// Run performs a single sweep and returns how many events were sent.
func (s *ExpirySweep) Run(ctx context.Context) (int, error) {
	now := s.Clock.Now()
	today := model.DateOf(now)
	due := s.due(today)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	certs, err := s.Certs.ListExpiringBetween(ctx, today.AddDays(-1), today.AddDays(model.ExpiryWarningDays))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, c := range certs {
		kind, ok := due[c.ExpiryDate.String()]
		if !ok {
			continue
		}
		c = c.WithStatus(now)
		ev := queue.ComplianceEvent{
			MessageID:       uuid.NewString(),
			Kind:            kind,
			UserID:          c.UserID,
			CertificateID:   c.ID,
			CertificateType: string(c.CertificateType),
			IssuedBy:        c.IssuedBy,
			ExpiryDate:      c.ExpiryDate.String(),
			Status:          string(c.Status),
			OccurredAt:      now,
		}
		if err := s.Publisher.PublishCompliance(ctx, ev); err != nil {
			s.Log.Warn("expiry sweep: publish failed", zap.Uint64("certificate_id", c.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// Schedule registers the sweep on a new cron scheduler with the given
// five-field spec.  The caller starts and stops the returned cron.
func (s *ExpirySweep) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(spec, func() {
		n, err := s.Run(context.Background())
		if err != nil {
			s.Log.Error("expiry sweep failed", zap.Error(err))
			return
		}
		s.Log.Info("expiry sweep finished", zap.Int("events", n))
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
