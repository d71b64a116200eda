package cmd

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errPromptAborted is returned when the user interrupts an interactive prompt.
var errPromptAborted = errors.New("prompt aborted")

// prompter abstracts the interactive questions asked by init so tests can
// answer without a terminal.
type prompter interface {
	Select(message string, options []string, def string) (string, error)
	MultiSelect(message string, options []string, defs []string) ([]string, error)
	Input(message, def string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string, def string) (string, error) {
	var out string
	prompt := &survey.Select{Message: message, Options: options, PageSize: 15}
	if def != "" {
		prompt.Default = def
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) MultiSelect(message string, options []string, defs []string) ([]string, error) {
	var out []string
	prompt := &survey.MultiSelect{Message: message, Options: options, Default: defs, PageSize: 15}
	if err := survey.AskOne(prompt, &out); err != nil {
		return nil, translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Input(message, def string) (string, error) {
	var out string
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errPromptAborted
	}
	return err
}

// newPrompter is swapped in tests.
var newPrompter = func() prompter { return surveyPrompter{} }
