package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/spf13/cobra"
)

const deletePrompt = "Are you sure you want to delete this cat?"

func newCatsCmd(a *app) *cobra.Command {
	catsCmd := &cobra.Command{
		Use:   "cats",
		Short: "Register, list, update and delete cats",
	}
	catsCmd.AddCommand(
		newCatsListCmd(a),
		newCatsAddCmd(a),
		newCatsSetSalaryCmd(a),
		newCatsDeleteCmd(a),
	)
	return catsCmd
}

func newCatsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.catService.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			renderRoster(cmd.OutOrStdout(), cats)
			return nil
		},
	}
}

func newCatsAddCmd(a *app) *cobra.Command {
	var form models.CatForm
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Register a new cat",
		Example: `  spycat cats add --name Silky --experience 2 --breed Bengal --salary 500`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catService.Add(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered cat %d (%s)\n", cat.Id, cat.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "cat name")
	cmd.Flags().StringVar(&form.YearsOfExperience, "experience", "", "years of experience")
	cmd.Flags().StringVar(&form.Breed, "breed", "", `breed, see "spycat breeds"`)
	cmd.Flags().StringVar(&form.Salary, "salary", "", "salary")
	return cmd
}

func newCatsSetSalaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-salary <id> <salary>",
		Short: "Update a cat's salary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIdArg(args[0])
			if err != nil {
				return err
			}
			cat, err := a.catService.UpdateSalary(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now earns %s\n", cat.Name, models.FormatSalary(cat.Salary))
			return nil
		},
	}
}

func newCatsDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIdArg(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes && !confirm(cmd.InOrStdin(), out, deletePrompt) {
				fmt.Fprintln(out, "Deletion cancelled")
				return nil
			}
			if err := a.catService.DeleteById(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted cat %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func parseIdArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: use a number", arg)
	}
	return id, nil
}

// confirm asks a yes/no question; anything but y/yes declines.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
