package web

import (
	"net/http"
	"strings"

	"agegate/internal/domain/signup"
)

// signupRequest is one signup attempt forwarded by the host pipeline,
// together with the errors its earlier validators raised.
type signupRequest struct {
	MembershipID  flexString            `json:"membership_id"`
	Fields        map[string]flexString `json:"fields"`
	Authenticated bool                  `json:"authenticated"`
	Errors        []string              `json:"errors"`
}

type signupResponse struct {
	Errors     []string `json:"errors"`
	ErrorsHTML []string `json:"errors_html"`
}

// handleSignupValidate runs the registered signup validator and returns the
// resulting error list, both as stored text and rendered HTML.
func (s *server) handleSignupValidate(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := strictDecode(w, r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}

	fields := make(map[string]string, len(req.Fields))
	for k, v := range req.Fields {
		fields[k] = string(v)
	}
	attempt := signup.Attempt{
		MembershipID:  string(req.MembershipID),
		Fields:        fields,
		Authenticated: req.Authenticated,
	}

	errs := s.validator.ValidateSignup(r.Context(), attempt, req.Errors)
	if errs == nil {
		errs = []string{}
	}
	writeJSON(w, http.StatusOK, signupResponse{
		Errors:     errs,
		ErrorsHTML: renderAll(errs),
	})
}

// requireJSON rejects bodies that are not declared as JSON.
func requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "expected application/json"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
