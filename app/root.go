// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-secrets-app",
	Short: "GoSecretsApp is a small web application for keeping one secret per user",
	Long: `GoSecretsApp is a small web application where users register with an
email and password or sign in with Google, and can view and replace a single
personal secret.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
