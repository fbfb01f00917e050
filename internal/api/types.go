package api

import "time"

// ListMeta holds pagination information returned by list endpoints.
type ListMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// AccountDTO represents the authenticated account from /api/v1/me.
type AccountDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Plan      string    `json:"plan,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttachmentDTO describes a generated attachment (PDF or Excel) built
// from a document template at send time.
type AttachmentDTO struct {
	Type       string                 `json:"type"`
	TemplateID string                 `json:"templateId"`
	FileName   string                 `json:"fileName,omitempty"`
	Variables  map[string]interface{} `json:"variables,omitempty"`
}

// SendEmailRequest is the request body for POST /api/v1/emails/send.
type SendEmailRequest struct {
	TemplateID  string                 `json:"templateId"`
	To          string                 `json:"to"`
	ToName      string                 `json:"toName,omitempty"`
	Subject     string                 `json:"subject,omitempty"`
	FromName    string                 `json:"fromName,omitempty"`
	ReplyTo     string                 `json:"replyTo,omitempty"`
	Variables   map[string]interface{} `json:"variables,omitempty"`
	TrackOpens  bool                   `json:"trackOpens"`
	TrackClicks bool                   `json:"trackClicks"`
	Attachments []AttachmentDTO        `json:"attachments,omitempty"`
}

// SendResultDTO represents the result of a single send.
type SendResultDTO struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	To         string    `json:"to"`
	TemplateID string    `json:"templateId"`
	QueuedAt   time.Time `json:"queuedAt"`
}

// BulkRecipientDTO describes a single recipient of a bulk send.
type BulkRecipientDTO struct {
	Email     string                 `json:"email"`
	Name      string                 `json:"name,omitempty"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// SendBulkEmailRequest is the request body for POST /api/v1/emails/send-bulk.
type SendBulkEmailRequest struct {
	TemplateID      string                 `json:"templateId"`
	Recipients      []BulkRecipientDTO     `json:"recipients"`
	Subject         string                 `json:"subject,omitempty"`
	FromName        string                 `json:"fromName,omitempty"`
	ReplyTo         string                 `json:"replyTo,omitempty"`
	CommonVariables map[string]interface{} `json:"commonVariables,omitempty"`
	TrackOpens      bool                   `json:"trackOpens"`
	TrackClicks     bool                   `json:"trackClicks"`
}

// BulkSendResultDTO represents the result of a bulk send.
type BulkSendResultDTO struct {
	BatchID  string   `json:"batchId"`
	Total    int      `json:"total"`
	Queued   int      `json:"queued"`
	Rejected int      `json:"rejected"`
	EmailIDs []string `json:"emailIds,omitempty"`
}

// EmailDTO represents a sent email.
type EmailDTO struct {
	ID         string     `json:"id"`
	TemplateID string     `json:"templateId"`
	To         string     `json:"to"`
	ToName     string     `json:"toName,omitempty"`
	Subject    string     `json:"subject"`
	Status     string     `json:"status"`
	Opens      int        `json:"opens"`
	Clicks     int        `json:"clicks"`
	SentAt     *time.Time `json:"sentAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ListEmailsParams are the query parameters for GET /api/v1/emails.
type ListEmailsParams struct {
	Recipient  string
	Status     string
	TemplateID string
	DateFrom   string
	DateTo     string
	Limit      int
	Page       int
}

// TemplateDTO represents a template.
type TemplateDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Subject   string    `json:"subject,omitempty"`
	Variables []string  `json:"variables,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListTemplatesParams are the query parameters for GET /api/v1/templates.
type ListTemplatesParams struct {
	Type  string
	Limit int
	Page  int
}
