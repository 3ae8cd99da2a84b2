package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smartacademy/academy/internal/profile"
	"github.com/smartacademy/academy/internal/version"
	"github.com/smartacademy/academy/server"
	"github.com/smartacademy/academy/store"
	"github.com/smartacademy/academy/store/db"
)

var rootCmd = &cobra.Command{
	Use:   "academy",
	Short: "An interest-based course recommendation service",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		instanceProfile := &profile.Profile{
			Mode:                viper.GetString("mode"),
			Addr:                viper.GetString("addr"),
			Port:                viper.GetInt("port"),
			Data:                viper.GetString("data"),
			Driver:              viper.GetString("driver"),
			DSN:                 viper.GetString("dsn"),
			ScoringField:        viper.GetString("scoring-field"),
			SimilarityThreshold: viper.GetFloat64("similarity-threshold"),
			Version:             version.GetCurrentVersion(viper.GetString("mode")),
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if instanceProfile.JWTSecret == "" {
			return fmt.Errorf("ACADEMY_JWT_SECRET is required")
		}
		if instanceProfile.AIAPIKey == "" {
			return fmt.Errorf("ACADEMY_AI_API_KEY is required")
		}

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create db driver: %w", err)
		}

		st := store.New(dbDriver, instanceProfile)
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		s, err := server.NewServer(ctx, instanceProfile, st)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			slog.Info("received signal, shutting down", slog.String("signal", sig.String()))
			s.Shutdown(ctx)
			cancel()
		}()

		return s.Start(ctx)
	},
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("academy")

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")
	rootCmd.PersistentFlags().String("scoring-field", "", `course text used for scoring, "title" or "title_description"`)
	rootCmd.PersistentFlags().Float64("similarity-threshold", 0, "minimum similarity score for a recommendation, in [0,1]")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn", "scoring-field", "similarity-threshold"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to run server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
