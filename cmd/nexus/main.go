package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aussiebroadwan/nexus/internal/nexus/app"
	"github.com/spf13/cobra"
)

var dbFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbFile, "db", "d", "", "SQLite database file (overrides NEXUS_DATABASE_FILE)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() app.Config {
	cfg := app.LoadConfig()
	if dbFile != "" {
		cfg.DatabaseFile = dbFile
	}
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "Nexus knowledge-assistant backend",
	Long:  `Nexus serves the invitation, user administration, bot approval and chat API.`,
	// Running without a subcommand serves.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		st, err := app.OpenStore(cfg.DatabaseFile)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to %s\n", cfg.DatabaseFile)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion)
	},
}

func serve() error {
	application, err := app.New(loadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("nexus: %v", err)
		os.Exit(1)
	}
}
