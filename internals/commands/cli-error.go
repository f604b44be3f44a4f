package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/downloadmgr"
	"github.com/shardmc/shard/internals/merrors"
)

// CliError is an error that might get displayed to the user
type CliError struct {
	Text        string
	Code        string
	Suggestions []string
	Help        string
	// Err is the error this one was created from (if any)
	Err error
}

func (e *CliError) Error() string {
	return e.Text
}

func (e *CliError) Unwrap() error { return e.Err }

func (e *CliError) RichError() string {
	rendered := ErrorBox(e.Text, e.Help)
	if len(e.Suggestions) != 0 {
		suggestionText := "Suggestion:\n"
		if len(e.Suggestions) > 1 {
			suggestionText = "Suggestions:\n"
		}
		suggestionText = Emoji("📎 ") + suggestionText
		for _, s := range e.Suggestions {
			suggestionText += " ⦁ " + s + "\n"
		}
		rendered = lipgloss.JoinVertical(lipgloss.Left, rendered, styleHelpBox.Render(suggestionText))
	}
	return rendered
}

// FromError turns pipeline errors into a CliError with suggestions.
// CliErrors are returned as they are
func FromError(err error) *CliError {
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	rich := &CliError{Text: err.Error(), Err: err}
	switch {
	case merrors.IsIntegrity(err):
		rich.Code = "integrity"
		rich.Help = "A downloaded or extracted file did not match what was expected."
		if errors.Is(err, downloadmgr.ErrChecksumMismatch) {
			rich.Suggestions = []string{"Try again, the file will be downloaded again", "Check if a proxy modifies your downloads"}
		}
	case merrors.IsInstaller(err):
		rich.Code = "installer"
		rich.Suggestions = []string{
			"Make sure a recent java is installed (or set one with `shard config set java <path>`)",
			"Check if the loader version exists for this Minecraft version",
		}
	case merrors.IsResolution(err):
		rich.Code = "resolution"
		rich.Suggestions = []string{"Check the Minecraft and loader versions of your profile"}
	}
	return rich
}
