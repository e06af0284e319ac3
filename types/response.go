package types

// Response envelopes. Every endpoint reports ok:true on success and the
// transport error handler emits {ok:false, error:...} on failure.

// OKResponse is the minimal success envelope.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorBody is the uniform failure envelope.
type ErrorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// SubmitFeedbackResponse acknowledges a stored submission.
type SubmitFeedbackResponse struct {
	OK       bool      `json:"ok"`
	ID       string    `json:"id"`
	Feedback *Feedback `json:"feedback"`
}

// ListFeedbackResponse wraps a feedback page. The list is carried under the
// canonical "items" key only.
type ListFeedbackResponse struct {
	OK         bool        `json:"ok"`
	Items      []*Feedback `json:"items"`
	Total      int         `json:"total"`
	TotalPages int         `json:"totalPages"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

// PatchFeedbackResponse returns the record after a partial update.
type PatchFeedbackResponse struct {
	OK       bool      `json:"ok"`
	Feedback *Feedback `json:"feedback"`
}

// DeleteFeedbackResponse acknowledges a deletion.
type DeleteFeedbackResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// ChatResponse carries the assistant reply. Answer and Reply duplicate the
// same content because the two shipped chat widgets read different keys.
type ChatResponse struct {
	OK        bool   `json:"ok"`
	Answer    string `json:"answer"`
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// ChatHistoryResponse lists logged messages for the authenticated user.
type ChatHistoryResponse struct {
	OK    bool           `json:"ok"`
	Items []*ChatMessage `json:"items"`
}
