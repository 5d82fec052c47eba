package data

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/repo"
)

// Worksheet names in the follow-up spreadsheet
const (
	EscalationSheet = "SolicitudesHumano"
	InterestSheet   = "Interesados"
)

// Cells are stored as typed; sender text must never be parsed as a formula or date
const valueInputOption = "RAW"

// rowAppender appends one row to a named worksheet
type rowAppender interface {
	AppendRow(ctx context.Context, sheet string, row []interface{}) error
}

// sheetsAuditRepo implements the audit repository on a Google spreadsheet
type sheetsAuditRepo struct {
	appender rowAppender
}

// NewSheetsAuditRepo creates a Google Sheets audit repository from service account JSON
func NewSheetsAuditRepo(ctx context.Context, spreadsheetID, credentialsJSON string) (repo.AuditRepo, error) {
	return newSheetsAuditRepo(ctx, spreadsheetID,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

func newSheetsAuditRepo(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*sheetsAuditRepo, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &sheetsAuditRepo{appender: &sheetsAppender{svc: svc, spreadsheetID: spreadsheetID}}, nil
}

// AppendEscalation records a human-handoff request
func (r *sheetsAuditRepo) AppendEscalation(ctx context.Context, rec domain.AuditRecord) error {
	return r.append(ctx, EscalationSheet, rec)
}

// AppendInterest records an inquiry answered by the generative responder
func (r *sheetsAuditRepo) AppendInterest(ctx context.Context, rec domain.AuditRecord) error {
	return r.append(ctx, InterestSheet, rec)
}

func (r *sheetsAuditRepo) append(ctx context.Context, sheet string, rec domain.AuditRecord) error {
	cells := rec.Row()
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	if err := r.appender.AppendRow(ctx, sheet, row); err != nil {
		return fmt.Errorf("append row to %s: %w", sheet, err)
	}
	return nil
}

// Close is a no-op; the sheets service holds no resources
func (r *sheetsAuditRepo) Close() error {
	return nil
}

type sheetsAppender struct {
	svc           *sheets.Service
	spreadsheetID string
}

func (a *sheetsAppender) AppendRow(ctx context.Context, sheet string, row []interface{}) error {
	_, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, sheet, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
