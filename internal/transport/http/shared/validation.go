package shared

import (
	"net/http"

	"hrform/internal/domain/employee"
	"hrform/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// RejectDraft writes a validation_error response when draft breaks any rule.
// The top-level message is the first violated rule, the same text the
// editor shows.
func RejectDraft(w http.ResponseWriter, draft employee.Draft, requestID string) bool {
	violations := draft.Violations()
	if len(violations) == 0 {
		return false
	}
	issues := make([]ValidationIssue, 0, len(violations))
	for _, v := range violations {
		issues = append(issues, ValidationIssue{Field: string(v.Field), Reason: v.Message})
	}
	FailValidation(w, requestID, violations[0].Message, issues)
	return true
}

func FailValidation(w http.ResponseWriter, requestID, message string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		message,
		map[string]any{"fields": issues},
		requestID,
	)
}
