package settings

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	"agegate/internal/domain/customfield"
	"agegate/internal/domain/notice"
	"agegate/internal/platform/i18n"
)

// Issue is one rejected field of a settings submission.
type Issue struct {
	Code    string
	Message string
}

// Validate sanitises a submission and cross-checks it against the custom
// field registry. Rejected fields fall back to their value in previous and
// are reported as issues; validation never fails outright.
//
// PRE: previous is the currently stored record (or the defaults)
// POST: returned Settings satisfies the Settings invariants whenever previous does
// INVARIANT: only the first registry field with the submitted key is checked
func Validate(in Input, previous Settings, fields []customfield.Field, p *message.Printer) (Settings, []Issue) {
	var issues []Issue
	reject := func(code, msg string) {
		issues = append(issues, Issue{Code: code, Message: p.Sprintf(msg)})
	}

	out := Settings{
		Enabled: in.Enabled != nil && isOne(*in.Enabled),
	}

	if in.DateFieldKey != nil {
		out.DateFieldKey = SanitizeText(*in.DateFieldKey)
	}

	ageSubmitted := in.MinimumAge != nil
	if ageSubmitted {
		out.MinimumAge = leadingInt(*in.MinimumAge)
	}

	if in.AgeErrorMessage != nil {
		out.AgeErrorMessage = SanitizeRichText(*in.AgeErrorMessage)
	}
	if in.MissingFieldErrorMessage != nil {
		out.MissingFieldErrorMessage = SanitizeRichText(*in.MissingFieldErrorMessage)
	}

	out.Memberships = normalizeNames(in.Memberships)
	if len(out.Memberships) == 0 {
		reject(notice.CodeMemberships, i18n.MsgMembershipsEmpty)
		out.Memberships = slices.Clone(previous.Memberships)
	}

	switch {
	case !ageSubmitted || out.MinimumAge == 0:
		reject(notice.CodeMinimumAge, i18n.MsgMinimumAgeEmpty)
		out.MinimumAge = previous.MinimumAge
	case out.MinimumAge < 0:
		reject(notice.CodeMinimumAgeNegative, i18n.MsgMinimumAgeNegative)
		out.MinimumAge = previous.MinimumAge
	}

	if strings.TrimSpace(out.AgeErrorMessage) == "" {
		reject(notice.CodeAgeErrorMessage, i18n.MsgAgeErrorEmpty)
		out.AgeErrorMessage = previous.AgeErrorMessage
	}
	if strings.TrimSpace(out.MissingFieldErrorMessage) == "" {
		reject(notice.CodeMissingFieldErrorMessage, i18n.MsgMissingFieldErrorEmpty)
		out.MissingFieldErrorMessage = previous.MissingFieldErrorMessage
	}

	if out.DateFieldKey != "" {
		field, found := customfield.First(fields, out.DateFieldKey)
		if !found {
			reject(notice.CodeDateFieldUnknown, i18n.MsgDateFieldUnknown)
			out.DateFieldKey = previous.DateFieldKey
		} else {
			// Both checks report; either one rolls the key back.
			if !field.IsDate() {
				reject(notice.CodeDateFieldType, i18n.MsgDateFieldWrongType)
				out.DateFieldKey = previous.DateFieldKey
			}
			if !field.ShowOnSignup {
				reject(notice.CodeDateFieldHidden, i18n.MsgDateFieldHiddenAtSignup)
				out.DateFieldKey = previous.DateFieldKey
			}
		}
	}

	return out, issues
}

// isOne reports whether a submitted flag value means "on".
func isOne(v string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return err == nil && f == 1
}

// leadingInt parses the optional sign and digits at the start of s, after
// leading whitespace, ignoring anything that follows. No digits yields 0.
// Values beyond the int32 range are clamped.
func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
			break
		}
	}
	if neg {
		return -n
	}
	return n
}
