package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio website with a session-gated admin area",
	Long: `Serves the portfolio pages, blog, and contact form, plus an admin
dashboard protected by signed session cookies and a login rate limiter.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
