// Package outbox はoutboxテーブルの未送信行をKafkaへ流す。
package outbox

import (
	"context"
	"time"

	repo "storefront/internal/repository"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, key string, value []byte) error
}

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type Relay struct {
	repo     repo.OutboxRepository
	pub      Publisher
	batch    int
	interval time.Duration
	log      Logger
	now      func() time.Time
}

func NewRelay(r repo.OutboxRepository, pub Publisher, batch int, interval time.Duration, log Logger) *Relay {
	return &Relay{
		repo:     r,
		pub:      pub,
		batch:    batch,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// ctxがキャンセルされるまでintervalごとにFlushする
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Infof("outbox relay started interval=%s batch=%d", r.interval, r.batch)
	for {
		select {
		case <-ctx.Done():
			r.log.Infof("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.log.Errorf("outbox flush: %v", err)
			}
		}
	}
}

// 古い順に送る。送信に失敗したらそこで止めて次回に回す（順序を崩さない）。
// sent_atは送信成功後にだけ入れる。
func (r *Relay) Flush(ctx context.Context) (int, error) {
	events, err := r.repo.FetchPending(ctx, r.batch)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, e := range events {
		if err := r.pub.Publish(ctx, e.Topic, e.Key, []byte(e.Payload)); err != nil {
			return sent, err
		}
		if err := r.repo.MarkSent(ctx, e.ID, r.now()); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
