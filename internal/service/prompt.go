package service

import (
	"fmt"
	"strings"

	"github.com/cloo-solutions/tutorai/internal/dialogue"
	"github.com/cloo-solutions/tutorai/internal/domain"
)

const teacherPromptTemplate = `You are an experienced teacher helping a student understand a topic.

STRICT RULES:
- Use ONLY the information provided in the CONTEXT.
- Do NOT use outside knowledge.
- Do NOT guess or assume.
- If the answer is not found, say:
  "This is not mentioned in the provided material."

TEACHING STYLE:
- Step by step
- Simple language
- Calm and clear
- Cite page numbers

LEVEL:
%s

PREVIOUS DIALOGUE:
%s

CONTEXT:
%s

CURRENT STUDENT QUESTION:
%s

RESPONSE FORMAT:
%s
%s
%s
`

var difficultyInstructions = map[domain.Difficulty]string{
	domain.DifficultyEasy: `Explain as if teaching a 10-year-old.
- Use very simple words
- Short sentences
- No formulas
- Use analogies`,
	domain.DifficultyExam: `Explain for exam preparation.
- Use correct technical terms
- Structured explanation
- Important points highlighted
- Suitable for 5-8 mark answers`,
	domain.DifficultyRevision: `Give a quick revision.
- Bullet points only
- Very concise
- Focus on definitions and key facts`,
	domain.DifficultyNormal: `Explain normally.
- Clear and balanced explanation
- Not too simple, not too advanced`,
}

// DifficultyInstruction returns the teaching-level block for d. Unknown
// levels get the normal block.
func DifficultyInstruction(d domain.Difficulty) string {
	if s, ok := difficultyInstructions[d]; ok {
		return s
	}
	return difficultyInstructions[domain.DifficultyNormal]
}

// FormatHistory renders turns as "Student: ..." / "Teacher: ..." lines.
func FormatHistory(history []domain.ChatTurn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		speaker := "Teacher"
		if turn.Role == domain.ChatRoleStudent {
			speaker = "Student"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, turn.Content))
	}
	return strings.Join(lines, "\n")
}

// BuildContext renders results as "Page <id>: <text>" blocks separated by a
// blank line.
func BuildContext(results []domain.RetrievalResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("Page %s: %s", r.Chunk.SourcePage, r.Chunk.Text))
	}
	return strings.Join(blocks, "\n\n")
}

// TeacherPrompt assembles the single prompt sent to the completion model.
func TeacherPrompt(context, question, history string, difficulty domain.Difficulty) string {
	return fmt.Sprintf(teacherPromptTemplate,
		DifficultyInstruction(difficulty),
		history,
		context,
		question,
		dialogue.ExplanationMarker,
		dialogue.FollowupMarker,
		dialogue.ClarificationMarker,
	)
}
