// Package entities defines the domain entities for notes.
package entities

import "time"

// Note представляет собой заметку пользователя: текст или исходный код,
// с необязательной AI-сводкой и флагом публичного доступа.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsCode    bool      `json:"is_code"`
	Language  string    `json:"language,omitempty"`
	IsPublic  bool      `json:"is_public"`
	Summary   string    `json:"summary,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote создает новую заметку с указанным владельцем.
// Метки времени проставляются базой данных при сохранении.
func NewNote(userID, title, content string) *Note {
	return &Note{
		UserID:  userID,
		Title:   title,
		Content: content,
		Tags:    []string{},
	}
}
