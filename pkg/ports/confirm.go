package ports

// Confirmer abstracts the operator confirmation asked at the memory
// gate. Implementations include an interactive terminal prompt and
// fixed always-proceed / always-decline policies.
type Confirmer interface {
	// Confirm presents the prompt and reports whether the operator
	// agreed to proceed. Non-interactive implementations decide without
	// blocking.
	Confirm(prompt string) (bool, error)
}
