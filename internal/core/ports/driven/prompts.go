package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptGroundedAnswer is the system instruction for answer generation.
	// It constrains the model to the provided context and requires an
	// explicit "I don't know" when the context does not contain the answer.
	// The prompt has no format placeholders.
	PromptGroundedAnswer = "grounded_answer"
)
