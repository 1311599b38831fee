package sheets

import (
	"fmt"
	"regexp"
	"strings"
)

// Worksheet names and their fixed column header lists. The header order is
// the wire format: rows are written positionally against these lists.
const (
	TicketsSheet     = "tickets"
	LogSheet         = "log"
	EvaluationsSheet = "evaluations"
	UsersSheet       = "users"
)

var (
	TicketsHeaders = []string{
		"id", "date", "requester", "title", "issue_type", "description",
		"links_attachments", "involved_teams_people", "investigation_steps",
		"resolution_workaround", "owner", "status", "notes",
		"structured_summary_problem", "structured_summary_cause",
		"structured_summary_steps", "structured_summary_resolution",
		"structured_summary_cross_team", "compliance_score", "created_by",
		"created_at",
	}

	LogHeaders = []string{
		"ticket_id", "user_email", "prompt", "model_response",
		"result_status", "missing_sections", "compliance_score", "created_at",
	}

	EvaluationsHeaders = []string{
		"timestamp", "ticket_id", "draft_len", "rubric_version", "model",
		"raw_score", "pass", "verdict", "rationale", "failures",
		"evaluator_latency_ms",
	}

	UsersHeaders = []string{"email", "name", "role", "active", "created_at"}

	// Headers maps every logical table to its column list.
	Headers = map[string][]string{
		TicketsSheet:     TicketsHeaders,
		LogSheet:         LogHeaders,
		EvaluationsSheet: EvaluationsHeaders,
		UsersSheet:       UsersHeaders,
	}
)

var sheetIDRE = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// ExtractSheetID accepts either a bare spreadsheet ID or a full sheet URL.
func ExtractSheetID(sidOrURL string) string {
	if m := sheetIDRE.FindStringSubmatch(sidOrURL); m != nil {
		return m[1]
	}
	return strings.TrimSpace(sidOrURL)
}

// rowForHeaders flattens a string-keyed row mapping into the positional
// value list a worksheet append expects. Missing keys become empty cells.
func rowForHeaders(headers []string, row map[string]string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = row[h]
	}
	return out
}

// recordsFromValues converts a raw values range (header row first) into
// string-keyed records.
func recordsFromValues(values [][]interface{}) []map[string]string {
	if len(values) < 2 {
		return nil
	}
	headers := make([]string, len(values[0]))
	for i, cell := range values[0] {
		headers[i] = fmt.Sprint(cell)
	}

	records := make([]map[string]string, 0, len(values)-1)
	for _, rawRow := range values[1:] {
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rawRow) {
				record[h] = fmt.Sprint(rawRow[i])
			} else {
				record[h] = ""
			}
		}
		records = append(records, record)
	}
	return records
}
