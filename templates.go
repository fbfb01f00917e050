package formamail

import (
	"context"
	"time"

	"github.com/formamail/formamail-go/internal/api"
)

// TemplateType identifies what a template renders.
type TemplateType string

const (
	// TemplateEmail renders email bodies.
	TemplateEmail TemplateType = "email"
	// TemplatePDF renders PDF documents.
	TemplatePDF TemplateType = "pdf"
	// TemplateExcel renders Excel spreadsheets.
	TemplateExcel TemplateType = "excel"
)

// Template represents an email or document template.
type Template struct {
	ID        string
	Name      string
	Type      TemplateType
	Subject   string
	Variables []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListTemplatesParams filter and paginate template listings.
type ListTemplatesParams struct {
	Type  TemplateType
	Limit int
	Page  int
}

// TemplateList is a single page of templates.
type TemplateList struct {
	Templates []*Template
	Meta      ListMeta
}

// TemplatesService queries email and document templates.
type TemplatesService struct {
	client *Client
}

// Get returns a template by ID.
func (s *TemplatesService) Get(ctx context.Context, templateID string) (*Template, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, wrapError(err)
	}

	return templateFromDTO(dto), nil
}

// List returns a page of templates matching the given filters.
func (s *TemplatesService) List(ctx context.Context, params *ListTemplatesParams) (*TemplateList, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	var apiParams *api.ListTemplatesParams
	if params != nil {
		apiParams = &api.ListTemplatesParams{
			Type:  string(params.Type),
			Limit: params.Limit,
			Page:  params.Page,
		}
	}

	dtos, meta, err := s.client.apiClient.ListTemplates(ctx, apiParams)
	if err != nil {
		return nil, wrapError(err)
	}

	list := &TemplateList{
		Templates: make([]*Template, len(dtos)),
		Meta:      listMetaFromDTO(meta),
	}
	for i := range dtos {
		list.Templates[i] = templateFromDTO(&dtos[i])
	}
	return list, nil
}

// ListEmail returns a page of email templates.
func (s *TemplatesService) ListEmail(ctx context.Context, limit, page int) (*TemplateList, error) {
	return s.List(ctx, &ListTemplatesParams{Type: TemplateEmail, Limit: limit, Page: page})
}

// ListPDF returns a page of PDF templates.
func (s *TemplatesService) ListPDF(ctx context.Context, limit, page int) (*TemplateList, error) {
	return s.List(ctx, &ListTemplatesParams{Type: TemplatePDF, Limit: limit, Page: page})
}

// ListExcel returns a page of Excel templates.
func (s *TemplatesService) ListExcel(ctx context.Context, limit, page int) (*TemplateList, error) {
	return s.List(ctx, &ListTemplatesParams{Type: TemplateExcel, Limit: limit, Page: page})
}

func templateFromDTO(dto *api.TemplateDTO) *Template {
	return &Template{
		ID:        dto.ID,
		Name:      dto.Name,
		Type:      TemplateType(dto.Type),
		Subject:   dto.Subject,
		Variables: dto.Variables,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}
}
