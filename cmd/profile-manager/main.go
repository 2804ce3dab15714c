// Command profile-manager manages named credential profiles for a single
// user across multiple unrelated accounts.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/profile-manager/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/profile-manager/internal/application"
	"github.com/ericfisherdev/profile-manager/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// app holds the wired engine for the lifetime of one command invocation. The
// store handle is opened once in PersistentPreRunE and closed after the
// command runs; commands only ever talk to the ProfileService.
type app struct {
	root string
	db   *sqlite.DB
	svc  *application.ProfileService
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var debug bool

	cmd := &cobra.Command{
		Use:   "profile-manager",
		Short: "Manage credential profiles across accounts",
		Long: `Profile-manager is a small utility to manage credential profiles. For those
who work in environments with multiple accounts, or do consulting that
requires access to multiple unrelated accounts, it keeps every identity in
one local store and tracks which one is currently active.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			root, err := config.ResolveRoot()
			if err != nil {
				return err
			}

			db, err := sqlite.Open(cmd.Context(), config.DBPath(root))
			if err != nil {
				return err
			}

			a.root = root
			a.db = db
			a.svc = application.NewProfileService(sqlite.NewProfileRepo(db), sqlite.NewAuditRepo(db), slog.Default())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.db != nil {
				_ = a.db.Close()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		setCmd(a),
		unsetCmd(a),
		lsCmd(a),
		addCmd(a),
		rmCmd(a),
		configCmd(a),
		logCmd(a),
	)

	return cmd
}
