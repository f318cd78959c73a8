package dto

import "notesai/internal/notes/domain/entities"

// CreateNoteRequest - запрос на создание заметки.
type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	IsCode   bool     `json:"is_code"`
	Language string   `json:"language"`
	IsPublic bool     `json:"is_public"`
	Tags     []string `json:"tags"`
}

// UpdateNoteRequest - запрос на обновление заметки.
// Нулевые указатели означают, что поле не меняется.
type UpdateNoteRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	IsCode   *bool    `json:"is_code"`
	Language *string  `json:"language"`
	IsPublic *bool    `json:"is_public"`
	Summary  *string  `json:"summary"`
	Tags     []string `json:"tags"`
}

// NoteResponse - ответ с одной заметкой.
type NoteResponse struct {
	Note *entities.Note `json:"note"`
}

// ListNotesResponse - ответ со страницей заметок пользователя.
type ListNotesResponse struct {
	Notes      []*entities.Note `json:"notes"`
	TotalCount int              `json:"total_count"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}
