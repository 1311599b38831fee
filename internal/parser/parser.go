// Package parser converts semi-structured pasted ticket dumps into the flat
// field set the intake form expects. Parsing is total: malformed or empty
// input yields empty fields, never an error.
package parser

import (
	"strings"

	"github.com/tms-tools/supporthub/internal/domain/models"
)

// Parse runs every field extractor over the pasted ticket text and assembles
// the result. Extractors are independent, except that the issue-type
// classifier also consumes the extracted title and service type as signal.
func Parse(raw string) models.ParsedTicket {
	text := strings.TrimSpace(strings.ReplaceAll(raw, " ", " "))

	title := extractTitle(text)
	serviceType := findFirst(serviceTypeRE, text)

	return models.ParsedTicket{
		ID:                  extractID(text),
		Title:               title,
		IssueType:           guessIssueType(serviceType + " " + title + " " + text),
		Description:         extractDescription(text),
		LinksAttachments:    extractLinksAttachments(text),
		InvolvedTeamsPeople: extractInvolved(text),
		Requester:           extractRequester(text),
		Status:              statusFromText(text),
		Notes:               extractNotes(text),
	}
}
