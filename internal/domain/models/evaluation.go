package models

// GateSummary is the normalized five-field digest the structure gate returns
// when a draft investigation journal covers every mandatory section.
type GateSummary struct {
	Problem    string `json:"problem"`
	Cause      string `json:"cause"`
	Steps      string `json:"steps"`
	Resolution string `json:"resolution"`
	CrossTeam  string `json:"cross_team"`
}

// GateVerdict is the terminal outcome of one structure-gate evaluation.
// Either Accepted is true and Summary carries the normalized digest, or
// Missing names every section the judge found absent or unclear.
type GateVerdict struct {
	Accepted        bool
	Message         string
	Missing         []string
	Summary         *GateSummary
	ComplianceScore int
}

// RubricResult is the outcome of scoring a draft response against a rubric.
type RubricResult struct {
	RawScore  float64
	Verdict   string
	Rationale string
	Failures  []string
	Passed    bool
	Model     string
	LatencyMS int64
}

// User is a row of the users worksheet, keyed by email.
type User struct {
	Email  string
	Name   string
	Role   string
	Active bool
}

// LogEntry is one audit row written after a structure-gate evaluation.
type LogEntry struct {
	TicketID        string
	UserEmail       string
	Prompt          string
	ModelResponse   string
	ResultStatus    string
	MissingSections []string
	ComplianceScore int
}
