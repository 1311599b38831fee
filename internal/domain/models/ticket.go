package models

type TicketStatus string

const (
	StatusNew             TicketStatus = "New"
	StatusOpen            TicketStatus = "Open"
	StatusInProgress      TicketStatus = "In Progress"
	StatusPendingCustomer TicketStatus = "Pending Customer"
	StatusResolved        TicketStatus = "Resolved"
	StatusClosed          TicketStatus = "Closed"
)

type IssueType string

const (
	IssueAccess      IssueType = "Access"
	IssueSync        IssueType = "Sync"
	IssueEnhancement IssueType = "Enhancement"
	IssueBug         IssueType = "Bug"
	IssueOther       IssueType = "Other"
)

// Severities follow the S0 (outage) to S3 (minor) convention of the support desk.
var Severities = []string{"S0", "S1", "S2", "S3"}

type (
	// ParsedTicket holds the fields recovered from a pasted ticket dump.
	// Every field is always present; extractors that find nothing leave
	// the empty string.
	ParsedTicket struct {
		ID                  string `json:"id"`
		Title               string `json:"title"`
		IssueType           string `json:"issue_type"`
		Description         string `json:"description"`
		LinksAttachments    string `json:"links_attachments"`
		InvolvedTeamsPeople string `json:"involved_teams_people"`
		Requester           string `json:"requester"`
		Status              string `json:"status"`
		Notes               string `json:"notes"`
	}

	// Ticket is the record shape persisted to the tickets worksheet.
	Ticket struct {
		ID                  string
		Date                string
		Requester           string
		Title               string
		IssueType           string
		Description         string
		LinksAttachments    string
		InvolvedTeamsPeople string
		InvestigationSteps  string
		Resolution          string
		Owner               string
		Status              TicketStatus
		Notes               string
		Summary             *GateSummary
		ComplianceScore     int
		CreatedBy           string
		CreatedAt           string
	}
)

// Fields returns the parse result as the flat field mapping consumed by the
// intake form. The key set is fixed regardless of what the parser found.
func (p ParsedTicket) Fields() map[string]string {
	return map[string]string{
		"id":                    p.ID,
		"title":                 p.Title,
		"issue_type":            p.IssueType,
		"description":           p.Description,
		"links_attachments":     p.LinksAttachments,
		"involved_teams_people": p.InvolvedTeamsPeople,
		"requester":             p.Requester,
		"status":                p.Status,
		"notes":                 p.Notes,
	}
}
