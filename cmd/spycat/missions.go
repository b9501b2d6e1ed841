package main

import (
	"fmt"

	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/spf13/cobra"
)

func newMissionsCmd(a *app) *cobra.Command {
	missionsCmd := &cobra.Command{
		Use:   "missions",
		Short: "Inspect missions assigned to cats",
	}
	missionsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the mission overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.catService.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			renderMissions(cmd.OutOrStdout(), models.NewRoster(cats))
			return nil
		},
	})
	return missionsCmd
}

func newTargetsCmd(a *app) *cobra.Command {
	targetsCmd := &cobra.Command{
		Use:   "targets",
		Short: "Work with mission targets",
	}
	targetsCmd.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a target as completed and show the refreshed missions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIdArg(args[0])
			if err != nil {
				return err
			}
			cats, err := a.missionService.CompleteTarget(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Target %d completed\n", id)
			renderMissions(cmd.OutOrStdout(), models.NewRoster(cats))
			return nil
		},
	})
	return targetsCmd
}

func newBreedsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breeds",
		Short: "List the accepted breeds",
		Args:  cobra.NoArgs,
		// Needs neither config nor the agency.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			for _, breed := range models.Breeds() {
				fmt.Fprintln(cmd.OutOrStdout(), breed)
			}
		},
	}
}
