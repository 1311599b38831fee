// Package sheets implements the spreadsheet-backed persistence collaborator
// on top of the Google Sheets API. From this system's point of view each
// worksheet is an append-only log with a fixed header row; concurrent
// writers from other sessions may interleave rows.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	domainerrors "github.com/tms-tools/supporthub/internal/domain/errors"
	"github.com/tms-tools/supporthub/internal/domain/models"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/logger"
)

const DefaultRole = "agent"

var (
	_ ports.TicketStore = (*Store)(nil)
	_ ports.UserStore   = (*Store)(nil)
)

type Store struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewStore builds a store from service-account credentials JSON and a sheet
// ID or URL.
func NewStore(ctx context.Context, serviceAccountJSON []byte, sheetIDOrURL string) (*Store, error) {
	if len(serviceAccountJSON) == 0 {
		return nil, domainerrors.NewConfigError("service_account", "service account JSON not configured", nil)
	}
	sheetID := ExtractSheetID(sheetIDOrURL)
	if sheetID == "" {
		return nil, domainerrors.NewConfigError("sheet_id", "spreadsheet ID not configured", nil)
	}

	jwt, err := google.JWTConfigFromJSON(serviceAccountJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Store{svc: svc, spreadsheetID: sheetID}, nil
}

// EnsureWorksheets creates any missing logical tables and writes their
// header rows.
func (s *Store) EnsureWorksheets(ctx context.Context) error {
	spreadsheet, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("opening spreadsheet: %w", err)
	}

	existing := make(map[string]struct{}, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			existing[sheet.Properties.Title] = struct{}{}
		}
	}

	for name, headers := range Headers {
		if _, ok := existing[name]; ok {
			continue
		}
		logger.Info(ctx, "creating worksheet", "name", name)

		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: name},
				},
			}},
		}
		if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("creating worksheet %s: %w", name, err)
		}
		if err := s.appendRaw(ctx, name, headerCells(headers)); err != nil {
			return fmt.Errorf("writing headers for %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) AppendTicket(ctx context.Context, row map[string]string) error {
	return s.appendRaw(ctx, TicketsSheet, rowForHeaders(TicketsHeaders, row))
}

func (s *Store) AppendLog(ctx context.Context, row map[string]string) error {
	return s.appendRaw(ctx, LogSheet, rowForHeaders(LogHeaders, row))
}

func (s *Store) AppendEvaluation(ctx context.Context, row map[string]string) error {
	return s.appendRaw(ctx, EvaluationsSheet, rowForHeaders(EvaluationsHeaders, row))
}

// ListTickets returns the newest records up to limit, oldest first.
func (s *Store) ListTickets(ctx context.Context, limit int) ([]map[string]string, error) {
	records, err := s.readRecords(ctx, TicketsSheet)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}

// GetRole resolves the role of a user by email, falling back to the default
// agent role for unknown users.
func (s *Store) GetRole(ctx context.Context, email string) (string, error) {
	records, err := s.readRecords(ctx, UsersSheet)
	if err != nil {
		return "", err
	}
	for _, record := range records {
		if strings.EqualFold(record["email"], email) {
			if role := record["role"]; role != "" {
				return role, nil
			}
			break
		}
	}
	return DefaultRole, nil
}

// UpsertUser updates the name/role/active columns of an existing row keyed
// by email, or appends a new row.
func (s *Store) UpsertUser(ctx context.Context, user models.User) error {
	records, err := s.readRecords(ctx, UsersSheet)
	if err != nil {
		return err
	}

	active := "FALSE"
	if user.Active {
		active = "TRUE"
	}

	for i, record := range records {
		if !strings.EqualFold(record["email"], user.Email) {
			continue
		}
		// Header occupies row 1, so record i lives at sheet row i+2.
		rangeA1 := fmt.Sprintf("%s!B%d:D%d", UsersSheet, i+2, i+2)
		vr := &sheets.ValueRange{
			Values: [][]interface{}{{user.Name, user.Role, active}},
		}
		_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rangeA1, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("updating user %s: %w", user.Email, err)
		}
		return nil
	}

	row := rowForHeaders(UsersHeaders, map[string]string{
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
		"active":     active,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	return s.appendRaw(ctx, UsersSheet, row)
}

func (s *Store) appendRaw(ctx context.Context, sheet string, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending to %s: %w", sheet, err)
	}
	return nil
}

func (s *Store) readRecords(ctx context.Context, sheet string) ([]map[string]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sheet, err)
	}
	if len(resp.Values) == 0 {
		return nil, &domainerrors.WorksheetNotFoundError{Name: sheet}
	}
	return recordsFromValues(resp.Values), nil
}

func headerCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
