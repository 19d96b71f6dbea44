package engine

import "strings"

// InputIssue is one independent pre-flight violation (§4.1): an unknown
// reference, a subject with no teacher combination, or a classroom
// whose weekly window cannot possibly hold its assigned demand.
type InputIssue struct {
	Reason string
	Detail string
}

func (i InputIssue) String() string {
	if i.Detail == "" {
		return i.Reason
	}
	return i.Reason + ": " + i.Detail
}

// InputError reports every pre-flight violation found in a single pass
// (§7: "a single error carrying the consolidated list of issues"), so a
// problem with two independent violations surfaces both instead of only
// the first one found.
type InputError struct {
	Issues []InputIssue
}

func (e *InputError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

func newInputError(issues []InputIssue) *InputError {
	return &InputError{Issues: issues}
}
