package dto

import "tv-keuzehulp-be/pkg/catalog"

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

// ChatRequest carries either a single message or a client-held transcript
type ChatRequest struct {
	Message  string     `json:"message"`
	Messages []ChatTurn `json:"messages" validate:"omitempty,dive"`
}

type ChatResponse struct {
	Assistant string `json:"assistant"`
}

type AskRequest struct {
	QuestionIndex int      `json:"questionIndex"`
	Answers       []string `json:"answers"`
}

type AskResponse struct {
	NextQuestion     string `json:"nextQuestion"`
	NewQuestionIndex int    `json:"newQuestionIndex"`
	Done             bool   `json:"done"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Products int    `json:"products"`
}

type ProductsResponse []catalog.Product
