package web

import (
	"net/http"
	"strings"
	"time"

	"agegate/internal/application/orchestrators"
	"agegate/internal/domain/audit"
	"agegate/internal/domain/notice"
	"agegate/internal/domain/settings"
	"agegate/internal/platform/i18n"
)

// settingsRequest is the JSON form of a settings submission. Absent keys
// stay nil and are treated exactly like absent form keys.
type settingsRequest struct {
	Enabled                  *flexString `json:"enabled"`
	DateFieldKey             *flexString `json:"date_field_key"`
	MinimumAge               *flexString `json:"minimum_age"`
	AgeErrorMessage          *flexString `json:"age_error_message"`
	MissingFieldErrorMessage *flexString `json:"missing_field_error_message"`
	Memberships              []string    `json:"memberships"`
}

func (req settingsRequest) input() settings.Input {
	return settings.Input{
		Enabled:                  req.Enabled.ptr(),
		DateFieldKey:             req.DateFieldKey.ptr(),
		MinimumAge:               req.MinimumAge.ptr(),
		AgeErrorMessage:          req.AgeErrorMessage.ptr(),
		MissingFieldErrorMessage: req.MissingFieldErrorMessage.ptr(),
		Memberships:              req.Memberships,
	}
}

type noticeJSON struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func noticesJSON(ns []notice.Notice) []noticeJSON {
	out := make([]noticeJSON, 0, len(ns))
	for _, n := range ns {
		out = append(out, noticeJSON{Code: n.Code, Message: n.Message, CreatedAt: n.CreatedAt})
	}
	return out
}

type settingsResponse struct {
	Settings        settings.Settings `json:"settings"`
	Stored          bool              `json:"stored"`
	Notices         []noticeJSON      `json:"notices"`
	MembershipNames []string          `json:"membership_names,omitempty"`
}

// handleGetSettings returns the current settings, the last save's notices
// and every known membership name.
func (s *server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	view, err := orchestrators.ExecuteGetSettings(r.Context(), orchestrators.GetSettingsDeps{
		SettingsStore:   s.stores.SettingsStore,
		MembershipStore: s.stores.MembershipStore,
		NoticeStore:     s.stores.NoticeStore,
		Printer:         i18n.Printer(i18n.ResolveTag(r, s.locale)),
	})
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{
		Settings:        nonNilMemberships(view.Settings),
		Stored:          view.Stored,
		Notices:         noticesJSON(view.Notices),
		MembershipNames: view.MembershipNames,
	})
}

// handleSaveSettings accepts a JSON or form-encoded settings submission.
// Rejected fields are reported as notices with a 200; only malformed
// bodies are client errors.
func (s *server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var in settings.Input
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req settingsRequest
		if err := strictDecode(w, r, &req); err != nil {
			badRequest(w, "invalid JSON: "+err.Error())
			return
		}
		in = req.input()
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			badRequest(w, "invalid form body")
			return
		}
		in = settings.InputFromForm(r.PostForm)
	}

	result, err := orchestrators.ExecuteSaveSettings(r.Context(), orchestrators.SaveSettingsInput{
		Submission: in,
		Printer:    i18n.Printer(i18n.ResolveTag(r, s.locale)),
	}, orchestrators.SaveSettingsDeps{
		SettingsStore:    s.stores.SettingsStore,
		MembershipStore:  s.stores.MembershipStore,
		CustomFieldStore: s.stores.CustomFieldStore,
		NoticeStore:      s.stores.NoticeStore,
		GenerateID:       generateID,
		Now:              s.now,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}

	codes := make([]string, 0, len(result.Notices))
	for _, n := range result.Notices {
		codes = append(codes, n.Code)
	}
	desc := "saved"
	if len(codes) > 0 {
		desc = "saved with notices: " + strings.Join(codes, ", ")
	}
	s.recordChange(r, audit.ActionUpdate, audit.ResourceSettings, settings.OptionName, desc)

	writeJSON(w, http.StatusOK, settingsResponse{
		Settings: nonNilMemberships(result.Settings),
		Stored:   true,
		Notices:  noticesJSON(result.Notices),
	})
}

// nonNilMemberships keeps "memberships" an array in JSON output.
func nonNilMemberships(cfg settings.Settings) settings.Settings {
	if cfg.Memberships == nil {
		cfg.Memberships = []string{}
	}
	return cfg
}
