package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle from the embedded English
// defaults plus any locales/active.*.toml files found next to the binary.
func NewTranslations(defaultLang string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	files, err := filepath.Glob("locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	return &Translations{
		bundle:   bundle,
		localize: i18n.NewLocalizer(bundle, defaultLang),
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Support-ticket intake and response-quality evaluation for the TMS support desk"

	[app_description]
	other = "Parse pasted ticket dumps, gate draft investigation journals through the strict structure check, score drafts against a rubric and persist everything to the team spreadsheet."

	[error_missing_api_key]
	other = "Gemini API key is not configured. Set GEMINI_API_KEY or run 'supporthub config set-api-key'"

	[error_missing_sheet]
	other = "Spreadsheet is not configured. Set GOOGLE_SHEET_ID and GOOGLE_SERVICE_ACCOUNT_JSON or run 'supporthub config set-sheet'"

	[error_config_missing_keys]
	other = "Configuration incomplete, missing: {{.Keys}}"

	[parse_command_usage]
	other = "Parse a pasted ticket dump into structured intake fields"

	[parse_input_flag_usage]
	other = "Read the ticket dump from a file instead of stdin"

	[parse_save_flag_usage]
	other = "Append the parsed ticket to the tickets worksheet"

	[parse_empty_input]
	other = "Nothing to parse: provide ticket text on stdin or via --input"

	[parse_saved]
	other = "Ticket saved: {{.ID}}"

	[evaluate_command_usage]
	other = "Run the strict structure gate over a draft investigation journal"

	[evaluate_input_flag_usage]
	other = "Read the draft from a file instead of stdin"

	[evaluate_save_flag_usage]
	other = "On acceptance, persist the resolved ticket and an audit log row"

	[evaluate_ticket_flag_usage]
	other = "Ticket ID to attach the evaluation to"

	[evaluate_empty_draft]
	other = "Please provide a draft response to evaluate"

	[evaluate_accepted]
	other = "Accepted (compliance score {{.Score}})"

	[evaluate_rejected]
	other = "Rejected: response incomplete"

	[evaluate_missing_sections]
	other = "Missing or unclear sections:"

	[evaluate_saved]
	other = "Resolved ticket and audit log saved for {{.ID}}"

	[rubric_command_usage]
	other = "Score a draft response against the evaluation rubric"

	[rubric_result]
	other = "Score {{.Score}} -> {{.Verdict}} (model {{.Model}}, {{.Latency}} ms)"

	[rubric_saved]
	other = "Evaluation row saved for ticket {{.ID}}"

	[ticket_command_usage]
	other = "Manage support tickets in the spreadsheet"

	[ticket_save_usage]
	other = "Save a ticket from flags"

	[ticket_list_usage]
	other = "List the most recent tickets"

	[ticket_title_required]
	other = "Title is required"

	[ticket_invalid_severity]
	other = "Unknown severity '{{.Severity}}', expected S0, S1, S2 or S3"

	[ticket_saved]
	other = "Ticket saved: {{.ID}}"

	[ticket_none]
	other = "No tickets recorded yet"

	[users_command_usage]
	other = "Look up or update users and roles"

	[users_get_usage]
	other = "Show the role of a user by email"

	[users_set_usage]
	other = "Create or update a user row"

	[users_role]
	other = "{{.Email}} -> {{.Role}}"

	[users_saved]
	other = "User saved: {{.Email}}"

	[users_domain_not_allowed]
	other = "Email domain of {{.Email}} is not on the allow list"

	[users_invalid_role]
	other = "Unknown role '{{.Role}}', expected agent, lead or admin"

	[help_command_usage]
	other = "Show help"

	[config_command_usage]
	other = "Manage supporthub configuration"

	[config_init_usage]
	other = "Create or update the config file from flags"

	[config_initialized]
	other = "Configuration written to {{.Path}}"

	[config_still_missing]
	other = "Still missing: {{.Keys}}"

	[config_show_usage]
	other = "Show the current configuration"

	[config_set_api_key_usage]
	other = "Set the Gemini API key"

	[config_set_sheet_usage]
	other = "Set the spreadsheet ID or URL"

	[config_set_lang_usage]
	other = "Set the interface language"

	[config_saved]
	other = "Configuration saved"

	[current_config]
	other = "Current configuration"

	[language_label]
	other = "Language: {{.Lang}}"

	[model_label]
	other = "Gemini model: {{.Model}}"

	[sheet_label]
	other = "Spreadsheet: {{.SheetID}}"

	[sheet_not_set]
	other = "Spreadsheet: not set"

	[sheet_configured]
	other = "Spreadsheet configured: {{.SheetID}}"

	[defaults_label]
	other = "Defaults: product {{.Product}}, module {{.Module}}, locale {{.Locale}}"

	[allowed_domains_label]
	other = "Allowed email domains: {{.Domains}}"

	[api_key_set]
	other = "Gemini API key: configured"

	[api_key_not_set]
	other = "Gemini API key: not set"

	[api_key_configured]
	other = "Gemini API key configured"

	[invalid_api_key]
	other = "API key looks too short to be valid"

	[unsupported_language]
	other = "Unsupported language. Available: en, es"

	[language_configured]
	other = "Language set to {{.Lang}}"

	[doctor_command_usage]
	other = "Check configuration and collaborator connectivity"

	[doctor_running_checks]
	other = "Running health checks..."

	[doctor_all_good]
	other = "Everything looks good"

	[doctor_has_warnings]
	other = "Working, with warnings; some commands are unavailable"

	[doctor_has_errors]
	other = "Some checks failed; supporthub is not fully operational"

	[doctor_check_config_file]
	other = "Config file"

	[doctor_check_gemini_key]
	other = "Gemini API key"

	[doctor_check_sheet]
	other = "Spreadsheet credentials"

	[doctor_check_rubric]
	other = "Rubric file"

	[doctor_config_not_found]
	other = "Config file not found"

	[doctor_run_config]
	other = "Run any supporthub command once to create it"

	[doctor_gemini_not_configured]
	other = "Gemini API key is not configured"

	[doctor_gemini_key_invalid]
	other = "Could not create the Gemini client with the configured key"

	[doctor_check_api_key]
	other = "Check the key with 'supporthub config set-api-key'"

	[doctor_sheet_not_configured]
	other = "Spreadsheet is not configured"

	[doctor_credentials_invalid]
	other = "Service account credentials are not valid JSON"

	[doctor_check_credentials]
	other = "Check GOOGLE_SERVICE_ACCOUNT_JSON or the configured credentials file"

	[doctor_rubric_builtin]
	other = "(built-in rubric)"

	[doctor_rubric_not_found]
	other = "Rubric file {{.Path}} does not exist"

	[doctor_check_rubric_path]
	other = "Fix rubric_path in the config file or remove it"

	[doctor_command_ready]
	other = "ready"

	[doctor_command_unavailable]
	other = "needs configuration"
	`
