package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const EnvPrefix = "CONFIGURATOR"

var (
	// cfgFile is the external configuration file path
	cfgFile string
)

func init() {
	cobra.OnInitialize(initEnv)
	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")

	// Optional flags
	rootCmd.Flags().String("dir", ".", "path to the repository to generate the configuration for (default: current directory)")
	rootCmd.Flags().String("repo.url", "", "repository URL to clone and analyze (alternative to dir)")
	rootCmd.Flags().String("repo.branch", "", "main branch version-update PRs target (default: main)")
	rootCmd.Flags().Int("generate.openPullRequestsLimit", -1, "open pull request quota per version-update entry, 0 generates a security-only configuration (default: 5)")
	rootCmd.Flags().Bool("generate.transitiveSecurity", false, "extend security updates to transitive dependencies")
	rootCmd.Flags().String("generate.output", "", "output path of the generated document, relative to the repository root (default: .github/dependabot.yml)")
	rootCmd.Flags().String("scanner.type", "", "scanner type (default: filesystem)")
	rootCmd.Flags().String("git.provider", "github", "Git provider type (e.g., github, gitlab)")
	rootCmd.Flags().String("git.token", "", "Access token for the Git provider (used for authentication and PR creation)")
	rootCmd.Flags().String("git.baseUrl", "", "Base API URL of the Git provider (e.g., https://api.github.com for GitHub, https://gitlab.example.com for GitLab)")
	rootCmd.Flags().Bool("pr.autoCreate", false, "enable automatic PR creation")
	rootCmd.Flags().Bool("pr.pushBranch", false, "push the regenerated configuration to a branch without creating a PR")
	rootCmd.Flags().StringSlice("pr.labels", []string{}, "labels to add to the PR")
	rootCmd.Flags().StringSlice("pr.assignees", []string{}, "assignees to add to the PR")
	rootCmd.Flags().Bool("debug", false, "enable debug log output")
	viper.BindPFlags(rootCmd.Flags())
}

func initEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}
