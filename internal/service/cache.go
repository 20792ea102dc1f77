package service

import (
	"context"
	"time"

	"github.com/samber/mo"

	"github.com/Nixie-Tech-LLC/planner/internal/calendar"
)

// WindowCache holds merged windows between mutations. Implementations log
// their own failures; a failed lookup is a miss.
//
// Windows are keyed by a version. Callers read Version before loading the
// data a window is built from and pass that same version to Get and Set, so
// a window computed from data read before an Invalidate is stored under the
// old version and never served afterwards. A negative version disables both
// Get and Set.
type WindowCache interface {
	Version(ctx context.Context) int64
	Get(ctx context.Context, version int64, from, to time.Time) mo.Option[[]calendar.Occurrence]
	Set(ctx context.Context, version int64, from, to time.Time, occurrences []calendar.Occurrence)
	Invalidate(ctx context.Context)
}

type nopCache struct{}

func (nopCache) Version(context.Context) int64 { return -1 }

func (nopCache) Get(context.Context, int64, time.Time, time.Time) mo.Option[[]calendar.Occurrence] {
	return mo.None[[]calendar.Occurrence]()
}

func (nopCache) Set(context.Context, int64, time.Time, time.Time, []calendar.Occurrence) {}

func (nopCache) Invalidate(context.Context) {}
