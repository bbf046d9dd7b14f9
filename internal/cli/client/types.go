package client

// ChatTurn is one message of conversation history sent with a question.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the chat API request.
type ChatRequest struct {
	Question   string     `json:"question"`
	History    []ChatTurn `json:"history"`
	Difficulty string     `json:"difficulty,omitempty"`
}

// Source is a passage the answer was grounded on. Page is a number for
// PDF pages and a label for transcript pages.
type Source struct {
	Page interface{} `json:"page"`
	Text string      `json:"text"`
}

// ChatResponse represents the chat API response.
type ChatResponse struct {
	Teacher         string   `json:"teacher"`
	Student         string   `json:"student"`
	TeacherFollowup string   `json:"teacher_followup"`
	Sources         []Source `json:"sources"`
}

// IngestResponse represents the ingestion API response.
type IngestResponse struct {
	Status      string `json:"status"`
	PDF         string `json:"pdf,omitempty"`
	ChunksAdded int    `json:"chunks_added"`
}

// HealthResponse represents the health API response.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse represents the knowledge base stats response.
type StatsResponse struct {
	Chunks    int `json:"chunks"`
	Dimension int `json:"dimension"`
}
