package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/profile-manager/internal/application"
	"github.com/ericfisherdev/profile-manager/internal/domain/model"
)

func setCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <profile>",
		Short: "Set the named profile as the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.svc.Activate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Export lines go to stdout so the command composes with eval:
			//   eval "$(profile-manager set work)"
			printExports(cmd.OutOrStdout(), profile)
			fmt.Fprintf(os.Stderr, "Profile %q is now active.\n", profile.Name)
			return nil
		},
	}
}

func unsetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unset",
		Short: "Deactivate the active profile, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleared, err := a.svc.Deactivate(cmd.Context())
			if err != nil {
				return err
			}
			if cleared == nil {
				fmt.Fprintln(os.Stderr, "No profile is active.")
				return nil
			}

			printUnsets(cmd.OutOrStdout())
			fmt.Fprintf(os.Stderr, "Profile %q deactivated.\n", cleared.Name)
			return nil
		},
	}
}

func lsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all available profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.svc.List(cmd.Context())
			if err != nil {
				return err
			}
			renderProfileTable(cmd.OutOrStdout(), profiles)
			return nil
		},
	}
}

func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add [profile] [key] [secret] [region]",
		Short: "Add a new profile, prompting for any omitted value",
		Args:  cobra.MaximumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := application.AddProfileRequest{Kind: model.KindAWS}
			dests := []*string{&req.Name, &req.AccessKey, &req.SecretKey, &req.Region}
			for i, arg := range args {
				*dests[i] = arg
			}

			if err := promptMissing(cmd.InOrStdin(), os.Stderr, &req); err != nil {
				return err
			}

			profile, err := a.svc.Add(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added profile %q (%s, %s).\n", profile.Name, profile.Kind, profile.Region)
			return nil
		},
	}
}

func rmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <profile>",
		Short: "Remove the named profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed profile %q.\n", args[0])
			return nil
		},
	}
}

func configCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the store location and the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := a.svc.Active(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Root directory: %s\n", a.root)
			fmt.Fprintf(out, "Database file:  %s\n", a.db.Path())
			if active == nil {
				fmt.Fprintln(out, "Active profile: none")
			} else {
				fmt.Fprintf(out, "Active profile: %s (%s, %s)\n", active.Name, active.Kind, active.Region)
			}
			return nil
		},
	}
}

func logCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Print the audit trail of profile changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := a.svc.History(cmd.Context())
			if err != nil {
				return err
			}
			renderAuditTable(cmd.OutOrStdout(), events)
			return nil
		},
	}
}
