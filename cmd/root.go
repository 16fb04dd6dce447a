package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mpapenbr/ghostlap-go/pkg/cmd/best"
	"github.com/mpapenbr/ghostlap-go/pkg/cmd/inspect"
	"github.com/mpapenbr/ghostlap-go/pkg/cmd/merge"
	migrateCmd "github.com/mpapenbr/ghostlap-go/pkg/cmd/migrate"
	"github.com/mpapenbr/ghostlap-go/pkg/cmd/record"
	"github.com/mpapenbr/ghostlap-go/pkg/cmd/replay"
	"github.com/mpapenbr/ghostlap-go/pkg/cmd/util"
	"github.com/mpapenbr/ghostlap-go/pkg/config"
	"github.com/mpapenbr/ghostlap-go/pkg/store"
	"github.com/mpapenbr/ghostlap-go/version"
)

const envPrefix = "GHL"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "ghl",
	Short:   "Record laps and replay them as ghosts",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return util.SetupLogger()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:funlen // flag definitions
func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.ghl.yml)")

	pf.StringVar(&config.LogLevel, "log-level", "info",
		"controls the log level (debug, info, warn, error, fatal)")
	pf.StringVar(&config.SQLLogLevel, "sql-log-level", "info",
		"controls the log level for sql methods")
	pf.StringVar(&config.LogFormat, "log-format", "text",
		"controls the log output format (text, json)")
	pf.StringVar(&config.LogFilter, "log-filter", "",
		"zapfilter rules to restrict log output (e.g. \"*:* -debug:store*\")")

	pf.Float64Var(&config.SampleInterval, "sample-interval", 0.1,
		"seconds between two recorded samples")
	pf.StringVar(&config.Store, "store", string(store.TypeFile),
		"record store backend (file, badger, redis, sqlite, postgres, nats)")
	pf.StringVar(&config.DataDir, "data-dir", "",
		"directory of the file store (default is the user config dir)")
	pf.StringVar(&config.BundledDir, "bundled-dir", "",
		"directory with bundled default records")
	pf.StringVar(&config.CacheExpiration, "cache-expiration", "0s",
		"duration record lookups are cached (0 disables the cache)")
	pf.StringVar(&config.BadgerPath, "badger-path", "ghostlap.badger",
		"directory of the badger database")
	pf.StringVar(&config.SQLitePath, "sqlite-path", "ghostlap.db",
		"path of the sqlite database")
	pf.StringVar(&config.DB, "db",
		"postgresql://DB_USERNAME:DB_USER_PASSWORD@DB_HOST:5432/ghostlap",
		"Connection string for the database")
	pf.StringVar(&config.RedisAddr, "redis-addr", "localhost:6379",
		"address of the redis server")
	pf.StringVar(&config.RedisPassword, "redis-password", "",
		"password for the redis server")
	pf.StringVar(&config.NatsURL, "nats-url", "nats://localhost:4222",
		"URL of the nats server")
	pf.StringVar(&config.NatsBucket, "nats-bucket", store.DefaultBucket,
		"name of the jetstream key-value bucket")
	pf.StringVar(&config.WaitForServices, "wait-for-services", "15s",
		"Duration to wait for other services to be ready")

	// add commands here
	rootCmd.AddCommand(record.NewRecordCmd())
	rootCmd.AddCommand(replay.NewReplayCmd())
	rootCmd.AddCommand(inspect.NewInspectCmd())
	rootCmd.AddCommand(merge.NewMergeCmd())
	rootCmd.AddCommand(best.NewBestCmd())
	rootCmd.AddCommand(migrateCmd.NewMigrateCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".ghl" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ghl")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
		for _, sub := range cmd.Commands() {
			bindFlags(sub, viper.GetViper())
		}
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --sample-interval to GHL_SAMPLE_INTERVAL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
