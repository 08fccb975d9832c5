package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via CRESTAGIT_TEST_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (CRESTAGIT_TEST_NO_INTERACTIVE is set)")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("CRESTAGIT_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// PromptCommitMessage asks for a commit message, offering defaultMessage as
// the value accepted on enter.
func PromptCommitMessage(defaultMessage string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	var message string
	prompt := &survey.Input{
		Message: "Commit message",
		Default: defaultMessage,
	}
	if err := survey.AskOne(prompt, &message); err != nil {
		return "", fmt.Errorf("canceled")
	}

	return message, nil
}
