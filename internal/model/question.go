package model

import "time"

var QuestionCategories = []string{"General", "Fiqh", "Family", "Other"}

type Question struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Answer     *string    `json:"answer"`
	IsPublic   bool       `json:"is_public"`
	IsAnswered bool       `json:"is_answered"`
	Category   string     `json:"category"`
	CreatedAt  time.Time  `json:"created_at"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}

// ValidCategory reports whether c is one of QuestionCategories.
func ValidCategory(c string) bool {
	for _, known := range QuestionCategories {
		if c == known {
			return true
		}
	}
	return false
}
