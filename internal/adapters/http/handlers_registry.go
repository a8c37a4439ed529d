package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"agegate/internal/application/orchestrators"
	"agegate/internal/domain/audit"
	"agegate/internal/domain/customfield"
	"agegate/internal/domain/membership"
)

type membershipJSON struct {
	ID   flexString `json:"id"`
	Name string     `json:"name"`
}

type customFieldJSON struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	ShowOnSignup bool   `json:"show_on_signup"`
}

func toCustomFieldJSON(fields []customfield.Field) []customFieldJSON {
	out := make([]customFieldJSON, 0, len(fields))
	for _, f := range fields {
		out = append(out, customFieldJSON{Key: f.Key, Name: f.Name, Type: f.Type, ShowOnSignup: f.ShowOnSignup})
	}
	return out
}

func (c customFieldJSON) field() customfield.Field {
	return customfield.Field{Key: c.Key, Name: c.Name, Type: c.Type, ShowOnSignup: c.ShowOnSignup}
}

// isValidationError reports whether err is a domain validation failure.
func isValidationError(err error) bool {
	return errors.Is(err, membership.ErrMissingID) ||
		errors.Is(err, membership.ErrMissingName) ||
		errors.Is(err, membership.ErrNameTooLong) ||
		errors.Is(err, customfield.ErrMissingKey) ||
		errors.Is(err, customfield.ErrInvalidType)
}

func (s *server) handleListMemberships(w http.ResponseWriter, r *http.Request) {
	items, err := s.stores.MembershipStore.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	out := make([]membershipJSON, 0, len(items))
	for _, m := range items {
		out = append(out, membershipJSON{ID: flexString(m.ID), Name: m.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleSaveMembership(w http.ResponseWriter, r *http.Request) {
	var req membershipJSON
	if err := strictDecode(w, r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	m, err := orchestrators.ExecuteSaveMembership(r.Context(),
		membership.Membership{ID: string(req.ID), Name: req.Name}, s.registryDeps())
	if isValidationError(err) {
		badRequest(w, err.Error())
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	s.recordChange(r, audit.ActionUpdate, audit.ResourceMembership, m.ID, m.Name)
	writeJSON(w, http.StatusOK, membershipJSON{ID: flexString(m.ID), Name: m.Name})
}

func (s *server) handleDeleteMembership(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := orchestrators.ExecuteDeleteMembership(r.Context(), id, s.registryDeps())
	if isValidationError(err) {
		badRequest(w, err.Error())
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	s.recordChange(r, audit.ActionDelete, audit.ResourceMembership, id, "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleListCustomFields(w http.ResponseWriter, r *http.Request) {
	fields, err := s.stores.CustomFieldStore.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomFieldJSON(fields))
}

// handleAddCustomField appends one field to the registry.
func (s *server) handleAddCustomField(w http.ResponseWriter, r *http.Request) {
	var req customFieldJSON
	if err := strictDecode(w, r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	f, err := orchestrators.ExecuteAddCustomField(r.Context(), req.field(), s.registryDeps())
	if isValidationError(err) {
		badRequest(w, err.Error())
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	s.recordChange(r, audit.ActionCreate, audit.ResourceCustomField, f.Key, f.Type)
	writeJSON(w, http.StatusOK, toCustomFieldJSON([]customfield.Field{f})[0])
}

// handleReplaceCustomFields replaces the registry with the posted ordered list.
func (s *server) handleReplaceCustomFields(w http.ResponseWriter, r *http.Request) {
	var req []customFieldJSON
	if err := strictDecode(w, r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	fields := make([]customfield.Field, 0, len(req))
	for _, c := range req {
		fields = append(fields, c.field())
	}
	saved, err := orchestrators.ExecuteReplaceCustomFields(r.Context(), fields, s.registryDeps())
	if isValidationError(err) {
		badRequest(w, err.Error())
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	s.recordChange(r, audit.ActionUpdate, audit.ResourceRegistry, "", strconv.Itoa(len(saved))+" custom fields")
	writeJSON(w, http.StatusOK, toCustomFieldJSON(saved))
}

func (s *server) handleDeleteCustomField(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	err := orchestrators.ExecuteDeleteCustomField(r.Context(), key, s.registryDeps())
	if isValidationError(err) {
		badRequest(w, err.Error())
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	s.recordChange(r, audit.ActionDelete, audit.ResourceCustomField, key, "")
	w.WriteHeader(http.StatusNoContent)
}
