package orchestrators

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/message"

	"agegate/internal/domain/customfield"
	"agegate/internal/domain/membership"
	"agegate/internal/domain/notice"
	"agegate/internal/domain/settings"
	"agegate/internal/platform/i18n"
	"agegate/internal/platform/log"
	"agegate/internal/platform/metrics"
)

// SettingsStoreForOrchestrator defines the settings persistence needed by orchestrators.
type SettingsStoreForOrchestrator interface {
	Get(ctx context.Context, name string, defaults settings.Settings) (settings.Settings, bool, error)
	Set(ctx context.Context, name string, value settings.Settings) error
}

// MembershipListerForOrchestrator lists the membership mirror.
type MembershipListerForOrchestrator interface {
	List(ctx context.Context) ([]membership.Membership, error)
}

// CustomFieldListerForOrchestrator lists the custom field registry in order.
type CustomFieldListerForOrchestrator interface {
	List(ctx context.Context) ([]customfield.Field, error)
}

// NoticeStoreForOrchestrator defines the notice persistence needed by orchestrators.
type NoticeStoreForOrchestrator interface {
	List(ctx context.Context, optionName string) ([]notice.Notice, error)
	ReplaceAll(ctx context.Context, optionName string, notices []notice.Notice) error
}

// --- Save Settings ---

// SaveSettingsInput carries input for the save settings orchestrator.
type SaveSettingsInput struct {
	Submission settings.Input
	Printer    *message.Printer // language of notices and defaults; nil means English
}

// SaveSettingsDeps holds dependencies for SaveSettings.
type SaveSettingsDeps struct {
	SettingsStore    SettingsStoreForOrchestrator
	MembershipStore  MembershipListerForOrchestrator
	CustomFieldStore CustomFieldListerForOrchestrator
	NoticeStore      NoticeStoreForOrchestrator
	GenerateID       func() string
	Now              func() time.Time
}

// SaveSettingsResult is the record as stored plus the notices the save raised.
type SaveSettingsResult struct {
	Settings settings.Settings
	Notices  []notice.Notice
}

// ExecuteSaveSettings validates a settings submission against the stored
// record and the custom field registry, then persists the corrected record.
// PRE: deps are non-nil
// POST: stored record equals result.Settings; stored notices equal result.Notices
// unless the notice write failed, which is logged and does not fail the save
// INVARIANT: a rejected field keeps its previous stored value; rejections never fail the save
func ExecuteSaveSettings(ctx context.Context, input SaveSettingsInput, deps SaveSettingsDeps) (SaveSettingsResult, error) {
	p := input.Printer
	if p == nil {
		p = i18n.Printer(i18n.Default())
	}

	memberships, err := deps.MembershipStore.List(ctx)
	if err != nil {
		return SaveSettingsResult{}, fmt.Errorf("list memberships: %w", err)
	}
	defaults := settings.Defaults(membership.Names(memberships), p)

	previous, _, err := deps.SettingsStore.Get(ctx, settings.OptionName, defaults)
	if err != nil {
		return SaveSettingsResult{}, fmt.Errorf("load settings: %w", err)
	}

	fields, err := deps.CustomFieldStore.List(ctx)
	if err != nil {
		return SaveSettingsResult{}, fmt.Errorf("list custom fields: %w", err)
	}

	saved, issues := settings.Validate(input.Submission, previous, fields, p)
	if err := deps.SettingsStore.Set(ctx, settings.OptionName, saved); err != nil {
		return SaveSettingsResult{}, fmt.Errorf("store settings: %w", err)
	}

	now := deps.Now()
	notices := make([]notice.Notice, 0, len(issues))
	for _, issue := range issues {
		n := notice.Notice{
			ID:         deps.GenerateID(),
			OptionName: settings.OptionName,
			Code:       issue.Code,
			Message:    issue.Message,
			CreatedAt:  now,
		}
		if err := n.Validate(); err != nil {
			return SaveSettingsResult{}, fmt.Errorf("notice %s: %w", issue.Code, err)
		}
		notices = append(notices, n)
	}
	logger := log.WithComponent("settings")
	// The record is already saved; stale notices are logged, not fatal.
	if err := deps.NoticeStore.ReplaceAll(ctx, settings.OptionName, notices); err != nil {
		logger.Error().Err(err).Int("notices", len(notices)).Msg("notice_store_failed")
	}

	metrics.SettingsSavesTotal.Inc()
	codes := make([]string, 0, len(notices))
	for _, n := range notices {
		metrics.SettingsNoticesTotal.WithLabelValues(n.Code).Inc()
		codes = append(codes, n.Code)
	}

	logger.Info().
		Str("event", "settings_saved").
		Bool("enabled", saved.Enabled).
		Int("minimum_age", saved.MinimumAge).
		Str("date_field_key", saved.DateFieldKey).
		Strs("notice_codes", codes).
		Msg("settings_event")

	return SaveSettingsResult{Settings: saved, Notices: notices}, nil
}

// --- Get Settings ---

// GetSettingsDeps holds dependencies for GetSettings.
type GetSettingsDeps struct {
	SettingsStore   SettingsStoreForOrchestrator
	MembershipStore MembershipListerForOrchestrator
	NoticeStore     NoticeStoreForOrchestrator
	Printer         *message.Printer
}

// SettingsView is what the admin settings screen needs to render.
type SettingsView struct {
	Settings        settings.Settings
	Stored          bool // false while the defaults are in effect
	Notices         []notice.Notice
	MembershipNames []string // every known membership, for the picker
}

// ExecuteGetSettings loads the current record, falling back to defaults.
// PRE: deps are non-nil
// POST: view.Settings is the stored record or the defaults; nothing is written
func ExecuteGetSettings(ctx context.Context, deps GetSettingsDeps) (SettingsView, error) {
	p := deps.Printer
	if p == nil {
		p = i18n.Printer(i18n.Default())
	}

	memberships, err := deps.MembershipStore.List(ctx)
	if err != nil {
		return SettingsView{}, fmt.Errorf("list memberships: %w", err)
	}
	names := membership.Names(memberships)

	current, stored, err := deps.SettingsStore.Get(ctx, settings.OptionName, settings.Defaults(names, p))
	if err != nil {
		return SettingsView{}, fmt.Errorf("load settings: %w", err)
	}

	notices, err := deps.NoticeStore.List(ctx, settings.OptionName)
	if err != nil {
		return SettingsView{}, fmt.Errorf("list notices: %w", err)
	}

	return SettingsView{
		Settings:        current,
		Stored:          stored,
		Notices:         notices,
		MembershipNames: names,
	}, nil
}
