package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/i18n"
	"github.com/tms-tools/supporthub/internal/infrastructure/ai/gemini"
)

type DoctorCommand struct{}

func NewDoctorCommand() *DoctorCommand {
	return &DoctorCommand{}
}

func (d *DoctorCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "doctor",
		Aliases: []string{"dr"},
		Usage:   t.GetMessage("doctor_command_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			return d.runHealthCheck(ctx, t, cfg)
		},
	}
}

type checkStatus int

const (
	checkStatusOK checkStatus = iota
	checkStatusWarning
	checkStatusError
)

type checkResult struct {
	status     checkStatus
	message    string
	suggestion string
}

type healthCheck struct {
	name string
	fn   func(context.Context, *i18n.Translations, *config.Config) checkResult
}

func (d *DoctorCommand) runHealthCheck(ctx context.Context, t *i18n.Translations, cfg *config.Config) error {
	fmt.Println(t.GetMessage("doctor_running_checks", 0, nil))

	checks := []healthCheck{
		{name: "doctor_check_config_file", fn: d.checkConfigFile},
		{name: "doctor_check_gemini_key", fn: d.checkGeminiAPIKey},
		{name: "doctor_check_sheet", fn: d.checkSheetCredentials},
		{name: "doctor_check_rubric", fn: d.checkRubricFile},
	}

	allPassed := true
	hasWarnings := false

	for _, check := range checks {
		checkName := t.GetMessage(check.name, 0, nil)
		result := check.fn(ctx, t, cfg)

		switch result.status {
		case checkStatusOK:
			fmt.Printf("  ✓ %s", checkName)
			if result.message != "" {
				fmt.Printf(" %s", result.message)
			}
			fmt.Println()
		case checkStatusWarning:
			hasWarnings = true
			fmt.Printf("  ! %s: %s\n", checkName, result.message)
			if result.suggestion != "" {
				fmt.Printf("    → %s\n", result.suggestion)
			}
		case checkStatusError:
			allPassed = false
			fmt.Printf("  ✗ %s: %s\n", checkName, result.message)
			if result.suggestion != "" {
				fmt.Printf("    → %s\n", result.suggestion)
			}
		}
	}

	fmt.Println()
	switch {
	case allPassed && !hasWarnings:
		fmt.Println(t.GetMessage("doctor_all_good", 0, nil))
	case allPassed:
		fmt.Println(t.GetMessage("doctor_has_warnings", 0, nil))
	default:
		fmt.Println(t.GetMessage("doctor_has_errors", 0, nil))
	}

	fmt.Println()
	hasGemini := cfg.GeminiAPIKey != ""
	hasSheet := cfg.SheetID != "" && cfg.ServiceAccountJSON != ""
	d.printCommandStatus("parse", true, t)
	d.printCommandStatus("evaluate", hasGemini, t)
	d.printCommandStatus("rubric", hasGemini, t)
	d.printCommandStatus("ticket", hasSheet, t)
	d.printCommandStatus("users", hasSheet, t)
	return nil
}

func (d *DoctorCommand) checkConfigFile(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.PathFile == "" || !fileExists(cfg.PathFile) {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_config_not_found", 0, nil),
			suggestion: t.GetMessage("doctor_run_config", 0, nil),
		}
	}
	return checkResult{status: checkStatusOK, message: fmt.Sprintf("(%s)", cfg.PathFile)}
}

func (d *DoctorCommand) checkGeminiAPIKey(ctx context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.GeminiAPIKey == "" {
		return checkResult{
			status:     checkStatusWarning,
			message:    t.GetMessage("doctor_gemini_not_configured", 0, nil),
			suggestion: "supporthub config set-api-key --key <key>",
		}
	}

	testCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	judge, err := gemini.NewJudge(testCtx, cfg.GeminiAPIKey, cfg.GeminiModel, t)
	if err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_gemini_key_invalid", 0, nil),
			suggestion: t.GetMessage("doctor_check_api_key", 0, nil),
		}
	}
	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%s)", judge.ModelName()),
	}
}

func (d *DoctorCommand) checkSheetCredentials(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.SheetID == "" {
		return checkResult{
			status:     checkStatusWarning,
			message:    t.GetMessage("doctor_sheet_not_configured", 0, nil),
			suggestion: "supporthub config set-sheet --sheet <id>",
		}
	}

	raw, err := cfg.ServiceAccount()
	if err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    err.Error(),
			suggestion: t.GetMessage("doctor_check_credentials", 0, nil),
		}
	}
	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(raw, &creds); err != nil || creds.ClientEmail == "" {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_credentials_invalid", 0, nil),
			suggestion: t.GetMessage("doctor_check_credentials", 0, nil),
		}
	}
	return checkResult{status: checkStatusOK, message: fmt.Sprintf("(%s)", creds.ClientEmail)}
}

func (d *DoctorCommand) checkRubricFile(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.RubricPath == "" {
		return checkResult{
			status:  checkStatusOK,
			message: t.GetMessage("doctor_rubric_builtin", 0, nil),
		}
	}
	if !fileExists(cfg.RubricPath) {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_rubric_not_found", 0, map[string]interface{}{"Path": cfg.RubricPath}),
			suggestion: t.GetMessage("doctor_check_rubric_path", 0, nil),
		}
	}
	return checkResult{status: checkStatusOK, message: fmt.Sprintf("(%s)", cfg.RubricPath)}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (d *DoctorCommand) printCommandStatus(command string, available bool, t *i18n.Translations) {
	status := "✗"
	statusMsg := t.GetMessage("doctor_command_unavailable", 0, nil)
	if available {
		status = "✓"
		statusMsg = t.GetMessage("doctor_command_ready", 0, nil)
	}
	fmt.Printf("  %s supporthub %-10s %s\n", status, command, statusMsg)
}
