package formamail

import (
	"context"
	"fmt"
	"time"

	"github.com/formamail/formamail-go/internal/api"
)

// EmailStatus represents the delivery status of a sent email.
type EmailStatus string

const (
	// EmailStatusQueued means the email is waiting to be sent.
	EmailStatusQueued EmailStatus = "queued"
	// EmailStatusSent means the email left the FormaMail servers.
	EmailStatusSent EmailStatus = "sent"
	// EmailStatusDelivered means the receiving server accepted the email.
	EmailStatusDelivered EmailStatus = "delivered"
	// EmailStatusOpened means the recipient opened the email.
	EmailStatusOpened EmailStatus = "opened"
	// EmailStatusClicked means the recipient clicked a tracked link.
	EmailStatusClicked EmailStatus = "clicked"
	// EmailStatusBounced means the receiving server rejected the email.
	EmailStatusBounced EmailStatus = "bounced"
	// EmailStatusFailed means sending failed permanently.
	EmailStatusFailed EmailStatus = "failed"
)

// AttachmentType identifies the kind of generated attachment.
type AttachmentType string

const (
	// AttachmentPDF is a PDF document generated from a PDF template.
	AttachmentPDF AttachmentType = "pdf"
	// AttachmentExcel is a spreadsheet generated from an Excel template.
	AttachmentExcel AttachmentType = "excel"
)

// Attachment describes a document generated from a template and attached
// to an email at send time.
type Attachment struct {
	Type       AttachmentType
	TemplateID string
	FileName   string
	Variables  map[string]interface{}
}

// GeneratedDocument describes the template-driven document used by
// SendWithPDF and SendWithExcel.
type GeneratedDocument struct {
	TemplateID string
	FileName   string
	Variables  map[string]interface{}
}

// SendEmailParams are the parameters for sending a single templated email.
// TemplateID and To are required. Open and click tracking default to
// enabled; set TrackOpens/TrackClicks to a false pointer to disable.
type SendEmailParams struct {
	TemplateID  string
	To          string
	ToName      string
	Subject     string
	FromName    string
	ReplyTo     string
	Variables   map[string]interface{}
	TrackOpens  *bool
	TrackClicks *bool
	Attachments []Attachment
}

// SendResult is the outcome of a single send.
type SendResult struct {
	ID         string
	Status     EmailStatus
	To         string
	TemplateID string
	QueuedAt   time.Time
}

// BulkRecipient is a single recipient of a bulk send. Variables override
// the bulk send's CommonVariables for this recipient.
type BulkRecipient struct {
	Email     string
	Name      string
	Variables map[string]interface{}
}

// SendBulkParams are the parameters for sending a templated email to many
// recipients in one call.
type SendBulkParams struct {
	TemplateID      string
	Recipients      []BulkRecipient
	Subject         string
	FromName        string
	ReplyTo         string
	CommonVariables map[string]interface{}
	TrackOpens      *bool
	TrackClicks     *bool
}

// BulkSendResult is the outcome of a bulk send.
type BulkSendResult struct {
	BatchID  string
	Total    int
	Queued   int
	Rejected int
	EmailIDs []string
}

// Email represents a sent email and its delivery state.
type Email struct {
	ID         string
	TemplateID string
	To         string
	ToName     string
	Subject    string
	Status     EmailStatus
	Opens      int
	Clicks     int
	SentAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListMeta holds pagination information for list results.
type ListMeta struct {
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// ListEmailsParams filter and paginate email listings. A nil value lists
// the first page with server defaults.
type ListEmailsParams struct {
	Recipient  string
	Status     EmailStatus
	TemplateID string
	DateFrom   string
	DateTo     string
	Limit      int
	Page       int
}

// EmailList is a single page of emails.
type EmailList struct {
	Emails []*Email
	Meta   ListMeta
}

// EmailsService sends and queries templated emails.
type EmailsService struct {
	client *Client
}

// Send sends a single email using a template.
func (s *EmailsService) Send(ctx context.Context, params *SendEmailParams) (*SendResult, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}
	if params == nil {
		return nil, fmt.Errorf("send params cannot be nil")
	}
	if params.TemplateID == "" {
		return nil, fmt.Errorf("template ID is required")
	}
	if params.To == "" {
		return nil, fmt.Errorf("recipient is required")
	}

	req := &api.SendEmailRequest{
		TemplateID:  params.TemplateID,
		To:          params.To,
		ToName:      params.ToName,
		Subject:     params.Subject,
		FromName:    params.FromName,
		ReplyTo:     params.ReplyTo,
		Variables:   params.Variables,
		TrackOpens:  trackingEnabled(params.TrackOpens),
		TrackClicks: trackingEnabled(params.TrackClicks),
	}
	for _, a := range params.Attachments {
		req.Attachments = append(req.Attachments, api.AttachmentDTO{
			Type:       string(a.Type),
			TemplateID: a.TemplateID,
			FileName:   a.FileName,
			Variables:  a.Variables,
		})
	}

	dto, err := s.client.apiClient.SendEmail(ctx, req)
	if err != nil {
		return nil, wrapError(err)
	}

	return sendResultFromDTO(dto), nil
}

// SendWithPDF sends an email with a PDF generated from a PDF template.
func (s *EmailsService) SendWithPDF(ctx context.Context, params *SendEmailParams, doc *GeneratedDocument) (*SendResult, error) {
	return s.sendWithDocument(ctx, params, doc, AttachmentPDF)
}

// SendWithExcel sends an email with a spreadsheet generated from an Excel template.
func (s *EmailsService) SendWithExcel(ctx context.Context, params *SendEmailParams, doc *GeneratedDocument) (*SendResult, error) {
	return s.sendWithDocument(ctx, params, doc, AttachmentExcel)
}

func (s *EmailsService) sendWithDocument(ctx context.Context, params *SendEmailParams, doc *GeneratedDocument, typ AttachmentType) (*SendResult, error) {
	if doc == nil || doc.TemplateID == "" {
		return nil, fmt.Errorf("document template ID is required")
	}
	if params == nil {
		return nil, fmt.Errorf("send params cannot be nil")
	}

	withDoc := *params
	withDoc.Attachments = append(append([]Attachment(nil), params.Attachments...), Attachment{
		Type:       typ,
		TemplateID: doc.TemplateID,
		FileName:   doc.FileName,
		Variables:  doc.Variables,
	})

	return s.Send(ctx, &withDoc)
}

// SendBulk sends a templated email to multiple recipients.
func (s *EmailsService) SendBulk(ctx context.Context, params *SendBulkParams) (*BulkSendResult, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}
	if params == nil {
		return nil, fmt.Errorf("bulk send params cannot be nil")
	}
	if params.TemplateID == "" {
		return nil, fmt.Errorf("template ID is required")
	}
	if len(params.Recipients) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	req := &api.SendBulkEmailRequest{
		TemplateID:      params.TemplateID,
		Subject:         params.Subject,
		FromName:        params.FromName,
		ReplyTo:         params.ReplyTo,
		CommonVariables: params.CommonVariables,
		TrackOpens:      trackingEnabled(params.TrackOpens),
		TrackClicks:     trackingEnabled(params.TrackClicks),
	}
	req.Recipients = make([]api.BulkRecipientDTO, len(params.Recipients))
	for i, r := range params.Recipients {
		req.Recipients[i] = api.BulkRecipientDTO{
			Email:     r.Email,
			Name:      r.Name,
			Variables: r.Variables,
		}
	}

	dto, err := s.client.apiClient.SendBulkEmail(ctx, req)
	if err != nil {
		return nil, wrapError(err)
	}

	return &BulkSendResult{
		BatchID:  dto.BatchID,
		Total:    dto.Total,
		Queued:   dto.Queued,
		Rejected: dto.Rejected,
		EmailIDs: dto.EmailIDs,
	}, nil
}

// Get returns a sent email by ID.
func (s *EmailsService) Get(ctx context.Context, emailID string) (*Email, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.GetEmail(ctx, emailID)
	if err != nil {
		return nil, wrapError(err)
	}

	return emailFromDTO(dto), nil
}

// List returns a page of sent emails matching the given filters.
func (s *EmailsService) List(ctx context.Context, params *ListEmailsParams) (*EmailList, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	var apiParams *api.ListEmailsParams
	if params != nil {
		apiParams = &api.ListEmailsParams{
			Recipient:  params.Recipient,
			Status:     string(params.Status),
			TemplateID: params.TemplateID,
			DateFrom:   params.DateFrom,
			DateTo:     params.DateTo,
			Limit:      params.Limit,
			Page:       params.Page,
		}
	}

	dtos, meta, err := s.client.apiClient.ListEmails(ctx, apiParams)
	if err != nil {
		return nil, wrapError(err)
	}

	list := &EmailList{
		Emails: make([]*Email, len(dtos)),
		Meta:   listMetaFromDTO(meta),
	}
	for i := range dtos {
		list.Emails[i] = emailFromDTO(&dtos[i])
	}
	return list, nil
}

// trackingEnabled resolves the tracking flag; a nil pointer means enabled.
func trackingEnabled(flag *bool) bool {
	return flag == nil || *flag
}

func sendResultFromDTO(dto *api.SendResultDTO) *SendResult {
	return &SendResult{
		ID:         dto.ID,
		Status:     EmailStatus(dto.Status),
		To:         dto.To,
		TemplateID: dto.TemplateID,
		QueuedAt:   dto.QueuedAt,
	}
}

func emailFromDTO(dto *api.EmailDTO) *Email {
	return &Email{
		ID:         dto.ID,
		TemplateID: dto.TemplateID,
		To:         dto.To,
		ToName:     dto.ToName,
		Subject:    dto.Subject,
		Status:     EmailStatus(dto.Status),
		Opens:      dto.Opens,
		Clicks:     dto.Clicks,
		SentAt:     dto.SentAt,
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
	}
}

func listMetaFromDTO(meta *api.ListMeta) ListMeta {
	if meta == nil {
		return ListMeta{}
	}
	return ListMeta{
		Total:      meta.Total,
		Page:       meta.Page,
		Limit:      meta.Limit,
		TotalPages: meta.TotalPages,
	}
}
