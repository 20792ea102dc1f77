// Package publish writes the calendar's iCalendar feed to storage, on demand
// or on a cron schedule.
package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/planner/internal/storage"
)

const runTimeout = time.Minute

// Exporter renders the calendar as an iCalendar document.
type Exporter interface {
	ExportICS(ctx context.Context) (string, error)
}

type Publisher struct {
	exporter Exporter
	storage  storage.Storage
	name     string
}

func NewPublisher(exporter Exporter, store storage.Storage, name string) *Publisher {
	return &Publisher{exporter: exporter, storage: store, name: name}
}

// Publish renders the feed and saves it, returning its location.
func (p *Publisher) Publish(ctx context.Context) (string, error) {
	doc, err := p.exporter.ExportICS(ctx)
	if err != nil {
		return "", fmt.Errorf("export calendar: %w", err)
	}

	location, err := p.storage.SaveFile(ctx, p.name, []byte(doc))
	if err != nil {
		return "", fmt.Errorf("save feed: %w", err)
	}

	log.Info().Str("location", location).Int("bytes", len(doc)).Msg("calendar feed published")
	return location, nil
}

// Schedule starts a cron scheduler that publishes on spec, a standard
// five-field cron expression or a descriptor such as "@hourly". The caller
// stops it with Stop.
func Schedule(spec string, p *Publisher) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if _, err := p.Publish(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled feed publication failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid PUBLISH_CRON %q: %w", spec, err)
	}

	c.Start()
	log.Info().Str("schedule", spec).Msg("feed publication scheduled")
	return c, nil
}
