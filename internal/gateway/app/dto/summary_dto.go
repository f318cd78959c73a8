package dto

// SummarizeRequest - запрос на генерацию саммари.
type SummarizeRequest struct {
	Text any `json:"text"`
}

// SummarizeResponse - ответ с сгенерированным саммари.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}
