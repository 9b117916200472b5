package pipeline

import (
	"fmt"
	"strings"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// generateCommitMessage generates a commit message for the regenerated configuration
func generateCommitMessage(summary *types.GenerationSummary) string {
	if len(summary.Ecosystems) == 0 {
		return "chore: regenerate dependabot configuration\n\nNo package ecosystems detected"
	}

	return fmt.Sprintf("chore: regenerate dependabot configuration\n\n%d update entries (%d version, %d security) for: %s",
		summary.TotalEntries(),
		summary.VersionEntries,
		summary.SecurityEntries,
		strings.Join(summary.Ecosystems, ", "))
}
