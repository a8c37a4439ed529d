package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/message"

	"agegate/internal/domain/agecheck"
	"agegate/internal/domain/membership"
	"agegate/internal/domain/settings"
	"agegate/internal/domain/signup"
	"agegate/internal/platform/i18n"
	"agegate/internal/platform/log"
	"agegate/internal/platform/metrics"
)

// Signup gate outcomes, used as log fields and metric labels.
const (
	OutcomeDisabled      = "disabled"
	OutcomeAuthenticated = "authenticated"
	OutcomeNoMembership  = "no_membership"
	OutcomeNoDateField   = "no_date_field"
	OutcomeNotApplicable = "not_applicable"
	OutcomeMissingField  = "missing_field"
	OutcomeUnparsable    = "unparsable"
	OutcomeUnderage      = "underage"
	OutcomeEligible      = "eligible"
	OutcomeError         = "error"
)

// SettingsReaderForGate reads the stored settings record.
type SettingsReaderForGate interface {
	Get(ctx context.Context, name string, defaults settings.Settings) (settings.Settings, bool, error)
}

// MembershipLookupForGate resolves a membership by id.
type MembershipLookupForGate interface {
	GetByID(ctx context.Context, id string) (membership.Membership, error)
}

// VerifySignupAgeDeps holds dependencies for VerifySignupAge.
type VerifySignupAgeDeps struct {
	SettingsStore   SettingsReaderForGate
	MembershipStore MembershipLookupForGate
	Parser          agecheck.Parser
	Printer         *message.Printer // only used to build defaults; nil means English
	Now             func() time.Time
}

// ExecuteVerifySignupAge runs the age check against one signup attempt.
// PRE: errs is the error list accumulated by earlier validators (may be nil)
// POST: returns errs unchanged, or a copy with exactly one message appended
// (the missing-field or the age message); errs itself is never modified
// INVARIANT: with the gate disabled, errs is returned unchanged whatever the attempt holds
func ExecuteVerifySignupAge(ctx context.Context, attempt signup.Attempt, errs []string, deps VerifySignupAgeDeps) ([]string, string, error) {
	p := deps.Printer
	if p == nil {
		p = i18n.Printer(i18n.Default())
	}

	// A missing record means the defaults, and the defaults are disabled.
	cfg, _, err := deps.SettingsStore.Get(ctx, settings.OptionName, settings.Defaults(nil, p))
	if err != nil {
		return errs, OutcomeError, fmt.Errorf("load settings: %w", err)
	}
	if !cfg.Enabled {
		return errs, OutcomeDisabled, nil
	}
	if attempt.Authenticated {
		return errs, OutcomeAuthenticated, nil
	}
	membershipID, ok := attempt.Membership()
	if !ok {
		return errs, OutcomeNoMembership, nil
	}
	if cfg.DateFieldKey == "" {
		return errs, OutcomeNoDateField, nil
	}

	m, err := deps.MembershipStore.GetByID(ctx, membershipID)
	switch {
	case errors.Is(err, membership.ErrNotFound):
		return errs, OutcomeNotApplicable, nil
	case err != nil:
		return errs, OutcomeError, fmt.Errorf("resolve membership %s: %w", membershipID, err)
	}
	if !cfg.AppliesTo(m.Name) {
		return errs, OutcomeNotApplicable, nil
	}

	raw, ok := attempt.Value(cfg.DateFieldKey)
	if !ok {
		return appendError(errs, cfg.MissingFieldErrorMessage), OutcomeMissingField, nil
	}
	birth, err := deps.Parser.Parse(raw)
	if err != nil {
		return appendError(errs, cfg.MissingFieldErrorMessage), OutcomeUnparsable, nil
	}

	now := deps.Now()
	if !agecheck.MeetsMinimumAge(birth, cfg.MinimumAge, now) {
		logger := log.WithComponent("signup")
		logger.Debug().
			Int("age", agecheck.AgeOn(birth, now)).
			Int("minimum_age", cfg.MinimumAge).
			Str("membership", m.Name).
			Msg("signup_underage")
		return appendError(errs, cfg.AgeErrorMessage), OutcomeUnderage, nil
	}
	return errs, OutcomeEligible, nil
}

func appendError(errs []string, msg string) []string {
	return append(slices.Clone(errs), msg)
}

// SignupValidator is one check in the host's signup pipeline. It receives
// the errors raised so far and returns them, possibly with more appended.
type SignupValidator interface {
	ValidateSignup(ctx context.Context, attempt signup.Attempt, errs []string) []string
}

// ValidatorChain runs validators in order, threading the error list through.
type ValidatorChain []SignupValidator

// ValidateSignup implements SignupValidator.
func (c ValidatorChain) ValidateSignup(ctx context.Context, attempt signup.Attempt, errs []string) []string {
	for _, v := range c {
		errs = v.ValidateSignup(ctx, attempt, errs)
	}
	return errs
}

// AgeGate is the SignupValidator registered with the signup pipeline.
// Internal failures are logged and let the signup through.
type AgeGate struct {
	deps VerifySignupAgeDeps
}

// NewAgeGate builds an AgeGate. A nil Now uses time.Now.
func NewAgeGate(deps VerifySignupAgeDeps) *AgeGate {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &AgeGate{deps: deps}
}

// ValidateSignup implements SignupValidator.
// POST: never drops entries from errs; on internal error returns errs unchanged
func (g *AgeGate) ValidateSignup(ctx context.Context, attempt signup.Attempt, errs []string) []string {
	out, outcome, err := ExecuteVerifySignupAge(ctx, attempt, errs, g.deps)
	metrics.SignupChecksTotal.WithLabelValues(outcome).Inc()

	logger := log.WithComponent("signup")
	if err != nil {
		metrics.SignupGateFailuresTotal.Inc()
		logger.Error().Err(err).Str("event", "gate_failed_open").Msg("signup_gate")
		return errs
	}
	logger.Debug().
		Str("event", "checked").
		Str("outcome", outcome).
		Str("membership_id", attempt.MembershipID).
		Msg("signup_gate")
	return out
}
