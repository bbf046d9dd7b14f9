package domain

// ChatRole identifies the speaker of a chat turn.
type ChatRole string

const (
	ChatRoleStudent ChatRole = "student"
	ChatRoleTeacher ChatRole = "teacher"
)

// IsValid reports whether r is a known role.
func (r ChatRole) IsValid() bool {
	switch r {
	case ChatRoleStudent, ChatRoleTeacher:
		return true
	}
	return false
}

// ChatTurn is one message of caller-supplied history.
type ChatTurn struct {
	Role    ChatRole
	Content string
}

// Difficulty selects how the teacher pitches an explanation.
type Difficulty string

const (
	DifficultyNormal   Difficulty = "normal"
	DifficultyEasy     Difficulty = "easy"
	DifficultyExam     Difficulty = "exam"
	DifficultyRevision Difficulty = "revision"
)

// ParseDifficulty maps free-form input to a Difficulty, defaulting to normal.
func ParseDifficulty(s string) Difficulty {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyExam, DifficultyRevision:
		return d
	}
	return DifficultyNormal
}

// DialogueResponse is the structured teacher/student reply.
type DialogueResponse struct {
	Teacher         string
	Student         string
	TeacherFollowup string
}

// Fixed answers that bypass the completion capability.
const (
	NoDocumentsAnswer = "No documents have been uploaded yet."
	NotCoveredAnswer  = "This topic is not covered in the provided material."
)

// NoDocumentsResponse is returned when the knowledge base is empty.
func NoDocumentsResponse() DialogueResponse {
	return DialogueResponse{Teacher: NoDocumentsAnswer}
}

// NotCoveredResponse is returned when retrieval finds nothing.
func NotCoveredResponse() DialogueResponse {
	return DialogueResponse{Teacher: NotCoveredAnswer}
}
