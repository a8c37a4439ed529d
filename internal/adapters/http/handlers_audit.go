package web

import (
	"net"
	"net/http"
	"strconv"

	"agegate/internal/adapters/http/middleware"
	auditStore "agegate/internal/adapters/storage/audit"
	"agegate/internal/application/orchestrators"
	auditDomain "agegate/internal/domain/audit"
	"agegate/internal/platform/log"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

// recordChange appends to the admin change trail. The change itself is
// already committed, so a failure here is logged and not returned.
func (s *server) recordChange(r *http.Request, action auditDomain.Action, resourceType, resourceID, desc string) {
	admin, _ := middleware.AdminFromContext(r.Context())
	_, err := orchestrators.ExecuteRecordAdminChange(r.Context(), orchestrators.RecordAdminChangeInput{
		Actor:        admin,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Description:  desc,
		IPAddress:    clientIP(r),
	}, orchestrators.RecordAdminChangeDeps{
		AuditStore: s.stores.AuditStore,
		GenerateID: generateID,
		Now:        s.now,
	})
	if err != nil {
		logger := log.WithComponent("http")
		logger.Error().Err(err).Str("resource_type", resourceType).Msg("audit_record_failed")
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// handleListAudit returns the admin change trail, newest first
// (GET /api/admin/audit?action=&actor=&resource_type=&limit=).
func (s *server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := auditStore.Filter{}
	if v := q.Get("action"); v != "" {
		action := auditDomain.Action(v)
		filter.Action = &action
	}
	if v := q.Get("actor"); v != "" {
		filter.Actor = &v
	}
	if v := q.Get("resource_type"); v != "" {
		filter.ResourceType = &v
	}

	limit := defaultAuditLimit
	if v := q.Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l <= 0 || l > maxAuditLimit {
			badRequest(w, "limit must be between 1 and "+strconv.Itoa(maxAuditLimit))
			return
		}
		limit = l
	}

	events, err := s.stores.AuditStore.List(r.Context(), filter, limit)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if events == nil {
		events = []auditDomain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
