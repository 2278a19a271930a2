package domain

// AccountStatus selects which rate-limit policy governs an account and
// whether the account may still change it through the opt protocol. The
// override variants behave like their plain counterparts but are pinned by
// an administrator: every self-service opt call is rejected while one is
// set.
type AccountStatus string

const (
	StatusDefault        AccountStatus = "default"
	StatusOptIn          AccountStatus = "opt_in"
	StatusOptOut         AccountStatus = "opt_out"
	StatusOptInOverride  AccountStatus = "opt_in_override"
	StatusOptOutOverride AccountStatus = "opt_out_override"
)

// Normalize maps the zero value to StatusDefault so that a missing policy
// row reads as "follows the default policy".
func (s AccountStatus) Normalize() AccountStatus {
	if s == "" {
		return StatusDefault
	}

	return s
}

func (s AccountStatus) Valid() bool {
	switch s.Normalize() {
	case StatusDefault, StatusOptIn, StatusOptOut, StatusOptInOverride, StatusOptOutOverride:
		return true
	default:
		return false
	}
}

func (s AccountStatus) OptedIn() bool {
	s = s.Normalize()
	return s == StatusOptIn || s == StatusOptInOverride
}

func (s AccountStatus) OptedOut() bool {
	s = s.Normalize()
	return s == StatusOptOut || s == StatusOptOutOverride
}

func (s AccountStatus) Overridden() bool {
	return s == StatusOptInOverride || s == StatusOptOutOverride
}

func (s AccountStatus) Label() string {
	switch s.Normalize() {
	case StatusOptIn:
		return "opt-in"
	case StatusOptOut:
		return "opt-out"
	case StatusOptInOverride:
		return "opt-in (pinned)"
	case StatusOptOutOverride:
		return "opt-out (pinned)"
	default:
		return "default"
	}
}
