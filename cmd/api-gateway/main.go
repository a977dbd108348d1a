package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title MI Attendance API
// @version 1.0.0
// @description Student and teacher records backed by MongoDB
// @BasePath /
// @schemes http

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "api-gateway",
		Short: "student and teacher records API",
		Long: fmt.Sprintf(`mi-attendance-api (v%s)

REST API for student and teacher records stored in MongoDB.`, Version),
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("mi-attendance-api v%s\n", Version)
		},
	})
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
