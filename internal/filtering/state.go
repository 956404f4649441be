package filtering

// state carries the enable/disable bookkeeping shared by all steps.
type state struct {
	disabled bool
	reason   string
}

func (s *state) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *state) IsEnabled() bool { return !s.disabled }
