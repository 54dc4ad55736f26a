package ai

// Типы запроса и ответа API generateContent.
// Описаны только поля, которые использует конвейер генерации.

// Part представляет один текстовый фрагмент содержимого
type Part struct {
	Text string `json:"text"`
}

// Content представляет содержимое запроса или кандидата
type Content struct {
	Parts []Part `json:"parts"`
}

// Schema описывает структурную схему ожидаемого JSON-ответа.
// Формат повторяет responseSchema API generateContent.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// GenerationConfig задает параметры генерации
type GenerationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

// GenerateContentRequest представляет тело запроса generateContent
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate представляет один вариант ответа модели
type Candidate struct {
	Content Content `json:"content"`
}

// GenerateContentResponse представляет тело ответа generateContent
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// FirstCandidateText возвращает текст первого кандидата.
// Пустая строка означает, что конверт ответа не содержит полезной нагрузки:
// вызывающая сторона обязана трактовать это как нарушение контракта, а не паниковать.
func (r *GenerateContentResponse) FirstCandidateText() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
