package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	urlRE = regexp.MustCompile(`https?://\S+`)

	serviceTitleRE = regexp.MustCompile(`(?im)Service Title\s*:\s*(.+)`)
	firstLineRE    = regexp.MustCompile(`(?m)^\s*(.+)$`)
	serviceTypeRE  = regexp.MustCompile(`(?im)Please select service type\s*:\s*(.+)`)

	// The numbered form of the intake template wins; a bare "Description:"
	// label is the fallback.
	numberedDescRE = regexp.MustCompile(`(?is)3\)\s*Description\s*:\s*(.+?)(?:\n\s*4\)|\n\s*5\)|\n\s*Created:|\z)`)
	bareDescRE     = regexp.MustCompile(`(?is)Description\s*:\s*(.+)`)

	attachedRE   = regexp.MustCompile(`(?i)Attachment\\?s\s*:\s*Attached document`)
	noAttachedRE = regexp.MustCompile(`(?i)Attachment\\?s\s*:\s*No attached document`)
	fileExtRE    = regexp.MustCompile(`(?im)File extension\s+(.+)`)

	observerBlockRE = regexp.MustCompile(`(?is)Please select observer\s*:\s*(.+?)(?:\n\s*\d+\)|\n\s*Created:|\z)`)
	numberedLineRE  = regexp.MustCompile(`^\d+\)`)

	requesterRE = regexp.MustCompile(`(?im)Created:\s*.+?\s*by\s*(.+)`)

	// Incident-ID conventions in priority order. The first pattern to match
	// wins, so "Ticket number: 12345 and TP-999" resolves to 12345.
	idPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bT[_\- ]?(\d{4,})\b`),
		regexp.MustCompile(`(?i)\bticket(?: number)?[ :#]*(\d{3,})\b`),
		regexp.MustCompile(`(?i)\btask(?: id)?[ :#]*(\d{3,})\b`),
		regexp.MustCompile(`(?i)\bjob(?: id)?[ :#]*(\d{3,})\b`),
		regexp.MustCompile(`(?i)\bTP[- ]?(\d{3,})\b`),
	}

	resolvedKeywords = []string{"solution approved", "solved", "fixed", "resolved"}
	notePrefixes     = []string{"created:", "last update", "link to", "link ticket"}
)

const (
	maxObserverLineLen = 80
	maxNoteLines       = 50
)

func findFirst(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return Normalize(m[1])
}

func extractID(text string) string {
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return Normalize(m[1])
		}
	}
	return ""
}

func extractTitle(text string) string {
	if title := findFirst(serviceTitleRE, text); title != "" {
		return title
	}
	return findFirst(firstLineRE, text)
}

// guessIssueType classifies into the closed issue-type set. The keyword
// priority is fixed: a text containing both "access" and "bug" is Access,
// which matches the historical intake behavior.
func guessIssueType(src string) string {
	s := strings.ToLower(src)
	switch {
	case strings.Contains(s, "access issue") || strings.Contains(s, "access"):
		return "Access"
	case strings.Contains(s, "sync"):
		return "Sync"
	case strings.Contains(s, "enhancement") || strings.Contains(s, "feature"):
		return "Enhancement"
	case strings.Contains(s, "report a problem") || strings.Contains(s, "error") ||
		strings.Contains(s, "bug") || strings.Contains(s, "urgent"):
		return "Bug"
	case strings.Contains(s, "complain") || strings.Contains(s, "complaint"):
		return "Other"
	default:
		return "Other"
	}
}

func extractDescription(text string) string {
	if m := numberedDescRE.FindStringSubmatch(text); m != nil {
		return Normalize(m[1])
	}
	if m := bareDescRE.FindStringSubmatch(text); m != nil {
		return Normalize(m[1])
	}
	return ""
}

func extractLinksAttachments(text string) string {
	var parts []string
	if attachedRE.MatchString(text) {
		parts = append(parts, "Attached document")
	}
	if noAttachedRE.MatchString(text) {
		parts = append(parts, "No attached document")
	}
	for _, m := range fileExtRE.FindAllStringSubmatch(text, -1) {
		parts = append(parts, Normalize(m[1]))
	}
	seen := make(map[string]struct{})
	for _, url := range urlRE.FindAllString(text, -1) {
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		parts = append(parts, url)
	}
	return strings.Join(parts, "; ")
}

// extractObservers keeps each line of the observer block until a numbered
// marker or a trailing-metadata line ("link ticket", "created:", "last
// update") is hit; that line and everything after it is noise. Lines of 80+
// characters are discarded as noise too.
func extractObservers(block string) []string {
	var kept []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "•- "))
		if line == "" {
			continue
		}
		if numberedLineRE.MatchString(line) {
			break
		}
		low := strings.ToLower(line)
		if strings.HasPrefix(low, "link ticket") || strings.HasPrefix(low, "created:") ||
			strings.HasPrefix(low, "last update") {
			break
		}
		if utf8.RuneCountInString(line) < maxObserverLineLen {
			kept = append(kept, line)
		}
	}
	return kept
}

func extractInvolved(text string) string {
	m := observerBlockRE.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.Join(extractObservers(m[1]), "; ")
}

func extractRequester(text string) string {
	requester := findFirst(requesterRE, text)
	if requester == "" {
		return ""
	}
	first, _, _ := strings.Cut(requester, "\n")
	return strings.TrimSpace(first)
}

func statusFromText(text string) string {
	s := strings.ToLower(text)
	for _, kw := range resolvedKeywords {
		if strings.Contains(s, kw) {
			return "Resolved"
		}
	}
	return "Open"
}

// extractNotes collects conversation-metadata lines (creation stamps, update
// stamps, cross links), capped at the first 50 hits.
func extractNotes(text string) string {
	var notes []string
	for _, line := range strings.Split(text, "\n") {
		low := strings.ToLower(strings.TrimSpace(line))
		for _, prefix := range notePrefixes {
			if strings.HasPrefix(low, prefix) {
				notes = append(notes, Normalize(line))
				break
			}
		}
		if len(notes) == maxNoteLines {
			break
		}
	}
	return strings.Join(notes, "\n")
}
