package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teemow/cadence/internal/config"
)

// rootFlags holds the persistent flags. Flags that were set on the command
// line override the environment.
type rootFlags struct {
	configPath      string
	orgFile         string
	rolesFile       string
	snapshotPath    string
	snapshotBackend string
	account         string
	credentials     string
	daysBack        int
	logLevel        string
	logFormat       string
	noColor         bool
}

var (
	flags    rootFlags
	settings config.Settings
)

// rootCmd represents the base command for the cadence application
var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Keeps recurring 1:1 meetings on schedule",
	Long: `cadence computes when each person in your organization is due for their
next 1:1, finds free slots in your calendar, checks the other person's
working hours and calendar, and books the meeting once you confirm.

Typical workflow:
  cadence auth                 # once per Google account
  cadence refresh              # recompute the due-date snapshot
  cadence recommend --start 2024-03-04 --end 2024-03-08`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "cadence version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Meeting frequency YAML file. Can also use CADENCE_CONFIG env var.")
	pf.StringVar(&flags.orgFile, "org", "", "Organization directory CSV file. Can also use CADENCE_ORG_FILE env var.")
	pf.StringVar(&flags.rolesFile, "roles", "", "Optional YAML file mapping email to role. Can also use CADENCE_ROLES_FILE env var.")
	pf.StringVar(&flags.snapshotPath, "snapshot", "", "Due-date snapshot path. Can also use CADENCE_SNAPSHOT env var.")
	pf.StringVar(&flags.snapshotBackend, "snapshot-backend", "", "Snapshot backend: file or sqlite. Can also use CADENCE_SNAPSHOT_BACKEND env var.")
	pf.StringVar(&flags.account, "account", "", "Google account name used for the token file. Can also use CADENCE_ACCOUNT env var.")
	pf.StringVar(&flags.credentials, "credentials", "", "Path to a Google OAuth credentials.json. Can also use CADENCE_CREDENTIALS env var.")
	pf.IntVar(&flags.daysBack, "days-back", 0, "Days of calendar history searched for the last 1:1. Can also use CADENCE_DAYS_BACK env var.")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error. Can also use CADENCE_LOG_LEVEL env var.")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json. Can also use CADENCE_LOG_FORMAT env var.")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newValidateAccessCmd())
	rootCmd.AddCommand(newLastCmd())
	rootCmd.AddCommand(newDueCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newSlotsCmd())
	rootCmd.AddCommand(newAvailableCmd())
	rootCmd.AddCommand(newRecommendCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	// A missing .env file is fine.
	_ = godotenv.Load()

	s, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	applyFlags(cmd, &s)
	if err := s.Validate(); err != nil {
		return err
	}
	settings = s
	return nil
}

func applyFlags(cmd *cobra.Command, s *config.Settings) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("config") {
		s.ConfigPath = flags.configPath
	}
	if changed("org") {
		s.OrgFile = flags.orgFile
	}
	if changed("roles") {
		s.RolesFile = flags.rolesFile
	}
	if changed("snapshot") {
		s.SnapshotPath = flags.snapshotPath
	}
	if changed("snapshot-backend") {
		s.SnapshotBackend = flags.snapshotBackend
	}
	if changed("account") {
		s.Account = flags.account
	}
	if changed("credentials") {
		s.CredentialsFile = flags.credentials
	}
	if changed("days-back") {
		s.DaysBack = flags.daysBack
	}
	if changed("log-level") {
		s.LogLevel = flags.logLevel
	}
	if changed("log-format") {
		s.LogFormat = flags.logFormat
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cadence",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "cadence version %s\n", version)
			return nil
		},
	}
}
