package activity

import "time"

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source. Tests use it to simulate dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone used for date keys and time labels.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}
