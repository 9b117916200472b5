package types

import "fmt"

// GenerationSummary describes the outcome of one configuration generation run.
// It feeds the PR description and the optional notification, not the emitted
// document itself.
type GenerationSummary struct {
	// VersionEntries is the number of version-update entries generated
	VersionEntries int `json:"version_entries"`
	// SecurityEntries is the number of security-update entries generated
	SecurityEntries int `json:"security_entries"`
	// Ecosystems lists the ecosystems present in the output, in output order
	Ecosystems []string `json:"ecosystems"`
	// Directories lists the directories present in the output, in output order
	Directories []string `json:"directories"`
	// Warnings are the non-fatal scan warnings accumulated during the run
	Warnings []ScanWarning `json:"warnings,omitempty"`
	// Changed indicates whether the regenerated document differs from the
	// copy checked into the repository
	Changed bool `json:"changed"`
}

// TotalEntries returns the total number of update entries generated.
func (s GenerationSummary) TotalEntries() int {
	return s.VersionEntries + s.SecurityEntries
}

// String returns a one-line summary suitable for logging.
func (s GenerationSummary) String() string {
	return fmt.Sprintf("%d update entries (%d version, %d security) across %d ecosystems",
		s.TotalEntries(), s.VersionEntries, s.SecurityEntries, len(s.Ecosystems))
}

// PRInfo represents basic information about a created pull request
type PRInfo struct {
	// Number is the pull request number
	Number int `json:"number"`
	// Title is the pull request title
	Title string `json:"title"`
	// URL is the web URL of the pull request
	URL string `json:"url"`
	// State is the pull request state (open, closed, merged)
	State string `json:"state"`
}
