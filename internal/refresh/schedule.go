package refresh

import (
	"fmt"
	"time"

	"github.com/gorhill/cronexpr"
)

// DefaultPublicationCron is when the auto-post pipeline publishes: 05:00,
// 17:00 and 23:00 site time.
const DefaultPublicationCron = "0 5,17,23 * * *"

// PublicationSchedule reports when new auto-posted articles are due.
type PublicationSchedule struct {
	spec string
	expr *cronexpr.Expression
	loc  *time.Location
}

// ParsePublicationSchedule parses a cron expression evaluated in loc.
func ParsePublicationSchedule(spec string, loc *time.Location) (*PublicationSchedule, error) {
	if spec == "" {
		spec = DefaultPublicationCron
	}
	expr, err := cronexpr.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("publication cron %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PublicationSchedule{spec: spec, expr: expr, loc: loc}, nil
}

// Spec is the cron expression.
func (p *PublicationSchedule) Spec() string { return p.spec }

// Next is the first publication strictly after t, in the site timezone.
func (p *PublicationSchedule) Next(t time.Time) time.Time {
	return p.expr.Next(t.In(p.loc))
}

// NextN lists the next n publications after t.
func (p *PublicationSchedule) NextN(t time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	return p.expr.NextN(t.In(p.loc), uint(n))
}
