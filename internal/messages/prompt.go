package messages

// Prompt messages for confirmations, selections, and text input.
const (
	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt          = "%s [Y/n]: "
	PromptNoDefaultFmt           = "%s [y/N]: "
	PromptInvalidResponse        = "invalid response %q"
	PromptRetryYesNo             = "Please enter y or n."
	PromptInputDefaultFmt        = "%s [%s]: "
	PromptInputFmt               = "%s: "
	PromptSelectOptionFmt        = "  %d) %s\n"
	PromptSelectChoiceFmt        = "Enter number [1-%d]: "
	PromptRetrySelectFmt         = "Please enter a number between 1 and %d."
	PromptInvalidSelectionFmt    = "invalid selection %q"
	PromptNoOptions              = "nothing to select from"
	PromptRequiresTerminal       = "prompt requires an interactive terminal"
	PromptSelectNeedsInteraction = "a selection is required but prompts are disabled by --yes"
)
