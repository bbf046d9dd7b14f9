// Package dialogue splits a raw model completion into the teacher, student and
// follow-up segments of a tutoring exchange.
package dialogue

import (
	"strings"

	"github.com/cloo-solutions/tutorai/internal/domain"
)

// Section markers the model is instructed to emit.
const (
	ExplanationMarker   = "Teacher Explanation:"
	FollowupMarker      = "Student Follow-up Question:"
	ClarificationMarker = "Teacher Clarification:"
)

// Parse never fails. Text without a follow-up marker is returned as the
// teacher segment in full, minus the leading explanation marker if present.
// Only the first occurrence of each marker is significant.
func Parse(raw string) domain.DialogueResponse {
	before, after, found := strings.Cut(raw, FollowupMarker)
	if !found {
		return domain.DialogueResponse{Teacher: teacherSegment(raw)}
	}

	resp := domain.DialogueResponse{Teacher: teacherSegment(before)}
	question, clarification, found := strings.Cut(after, ClarificationMarker)
	resp.Student = strings.TrimSpace(question)
	if found {
		resp.TeacherFollowup = strings.TrimSpace(clarification)
	}
	return resp
}

func teacherSegment(s string) string {
	if i := strings.Index(s, ExplanationMarker); i >= 0 {
		s = s[:i] + s[i+len(ExplanationMarker):]
	}
	return strings.TrimSpace(s)
}
