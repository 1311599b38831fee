// Package services composes the parser, gate and rubric outputs into the
// row mappings the spreadsheet store persists.
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tms-tools/supporthub/internal/domain/models"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/logger"
	"github.com/tms-tools/supporthub/internal/sanitize"
)

type IntakeService struct {
	store ports.TicketStore
}

func NewIntakeService(store ports.TicketStore) *IntakeService {
	return &IntakeService{store: store}
}

// NewTicketID generates an auto ticket ID for intake records that arrive
// without one.
func NewTicketID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TCK-" + strings.ToUpper(hex[:8])
}

// SaveParsed persists a parser result as a ticket row. The parsed field
// names are remapped onto the worksheet columns; a missing ID gets an
// auto-generated one.
func (s *IntakeService) SaveParsed(ctx context.Context, parsed models.ParsedTicket, createdBy string) (string, error) {
	id := parsed.ID
	if id == "" {
		id = NewTicketID()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	row := map[string]string{
		"id":                    id,
		"date":                  now,
		"requester":             parsed.Requester,
		"title":                 parsed.Title,
		"issue_type":            parsed.IssueType,
		"description":           parsed.Description,
		"links_attachments":     parsed.LinksAttachments,
		"involved_teams_people": parsed.InvolvedTeamsPeople,
		"status":                parsed.Status,
		"notes":                 parsed.Notes,
		"created_by":            createdBy,
		"created_at":            now,
	}

	if err := s.store.AppendTicket(ctx, row); err != nil {
		return "", fmt.Errorf("saving parsed ticket: %w", err)
	}
	logger.Info(ctx, "parsed ticket saved", "id", id)
	return id, nil
}

// SaveTicket persists a manually entered ticket.
func (s *IntakeService) SaveTicket(ctx context.Context, t models.Ticket) (string, error) {
	if t.ID == "" {
		t.ID = NewTicketID()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if t.Date == "" {
		t.Date = now
	}
	if t.CreatedAt == "" {
		t.CreatedAt = now
	}

	if err := s.store.AppendTicket(ctx, ticketRow(t)); err != nil {
		return "", fmt.Errorf("saving ticket: %w", err)
	}
	logger.Info(ctx, "ticket saved", "id", t.ID)
	return t.ID, nil
}

// SaveResolved persists an accepted structure-gate verdict as a resolved
// ticket row plus an audit log row. The prompt and the raw model response
// are PII-redacted before they land in the log.
func (s *IntakeService) SaveResolved(ctx context.Context, ticketID, userEmail, draft, rawResponse string, verdict models.GateVerdict) error {
	if !verdict.Accepted || verdict.Summary == nil {
		return fmt.Errorf("only accepted verdicts can be persisted as resolved tickets")
	}
	if ticketID == "" {
		ticketID = NewTicketID()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	ticket := map[string]string{
		"id":                            ticketID,
		"date":                          now,
		"status":                        string(models.StatusResolved),
		"investigation_steps":           verdict.Summary.Steps,
		"resolution_workaround":         verdict.Summary.Resolution,
		"structured_summary_problem":    verdict.Summary.Problem,
		"structured_summary_cause":      verdict.Summary.Cause,
		"structured_summary_steps":      verdict.Summary.Steps,
		"structured_summary_resolution": verdict.Summary.Resolution,
		"structured_summary_cross_team": verdict.Summary.CrossTeam,
		"involved_teams_people":         verdict.Summary.CrossTeam,
		"compliance_score":              strconv.Itoa(verdict.ComplianceScore),
		"created_by":                    userEmail,
		"created_at":                    now,
	}
	if err := s.store.AppendTicket(ctx, ticket); err != nil {
		return fmt.Errorf("saving resolved ticket: %w", err)
	}

	if err := s.store.AppendLog(ctx, logRow(ticketID, userEmail, draft, rawResponse, verdict, now)); err != nil {
		return fmt.Errorf("saving audit log: %w", err)
	}
	logger.Info(ctx, "resolved ticket saved", "id", ticketID)
	return nil
}

// LogRejection records a rejected evaluation in the audit log without
// touching the tickets worksheet.
func (s *IntakeService) LogRejection(ctx context.Context, ticketID, userEmail, draft, rawResponse string, verdict models.GateVerdict) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.store.AppendLog(ctx, logRow(ticketID, userEmail, draft, rawResponse, verdict, now)); err != nil {
		return fmt.Errorf("saving audit log: %w", err)
	}
	return nil
}

// SaveEvaluation appends a rubric scoring outcome to the evaluations
// worksheet.
func (s *IntakeService) SaveEvaluation(ctx context.Context, ticketID string, draftLen int, rubricVersion string, result models.RubricResult) error {
	row := map[string]string{
		"timestamp":            time.Now().UTC().Format(time.RFC3339),
		"ticket_id":            ticketID,
		"draft_len":            strconv.Itoa(draftLen),
		"rubric_version":       rubricVersion,
		"model":                result.Model,
		"raw_score":            strconv.FormatFloat(result.RawScore, 'f', -1, 64),
		"pass":                 strconv.FormatBool(result.Passed),
		"verdict":              result.Verdict,
		"rationale":            result.Rationale,
		"failures":             strings.Join(result.Failures, "; "),
		"evaluator_latency_ms": strconv.FormatInt(result.LatencyMS, 10),
	}
	if err := s.store.AppendEvaluation(ctx, row); err != nil {
		return fmt.Errorf("saving evaluation: %w", err)
	}
	return nil
}

// RecentTickets returns the newest ticket records up to limit.
func (s *IntakeService) RecentTickets(ctx context.Context, limit int) ([]map[string]string, error) {
	return s.store.ListTickets(ctx, limit)
}

func ticketRow(t models.Ticket) map[string]string {
	row := map[string]string{
		"id":                    t.ID,
		"date":                  t.Date,
		"requester":             t.Requester,
		"title":                 t.Title,
		"issue_type":            t.IssueType,
		"description":           t.Description,
		"links_attachments":     t.LinksAttachments,
		"involved_teams_people": t.InvolvedTeamsPeople,
		"investigation_steps":   t.InvestigationSteps,
		"resolution_workaround": t.Resolution,
		"owner":                 t.Owner,
		"status":                string(t.Status),
		"notes":                 t.Notes,
		"created_by":            t.CreatedBy,
		"created_at":            t.CreatedAt,
	}
	if t.Summary != nil {
		row["structured_summary_problem"] = t.Summary.Problem
		row["structured_summary_cause"] = t.Summary.Cause
		row["structured_summary_steps"] = t.Summary.Steps
		row["structured_summary_resolution"] = t.Summary.Resolution
		row["structured_summary_cross_team"] = t.Summary.CrossTeam
		row["compliance_score"] = strconv.Itoa(t.ComplianceScore)
	}
	return row
}

func logRow(ticketID, userEmail, draft, rawResponse string, verdict models.GateVerdict, now string) map[string]string {
	status := "rejected"
	score := ""
	if verdict.Accepted {
		status = "accepted"
		score = strconv.Itoa(verdict.ComplianceScore)
	}
	return map[string]string{
		"ticket_id":        ticketID,
		"user_email":       userEmail,
		"prompt":           sanitize.Redact(draft),
		"model_response":   sanitize.Redact(rawResponse),
		"result_status":    status,
		"missing_sections": strings.Join(verdict.Missing, "; "),
		"compliance_score": score,
		"created_at":       now,
	}
}
