package packets

// body for asking the imam a question
type SubmitQuestionRequest struct {
	Question string `json:"question" binding:"required"`
	Category string `json:"category"`
	IsPublic *bool  `json:"is_public"`
}

type ChatRequest struct {
	Message string `json:"message"`
}
