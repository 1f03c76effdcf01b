package main

import (
	"errors"
	"fmt"

	"github.com/2beens/gymtracker/internal/gymstats/plans"
	"github.com/2beens/gymtracker/internal/gymstats/sessions"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Exercise name library maintenance",
}

var libraryRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Record every exercise name used in any plan or session",
	Long: `Scans all plans and sessions of all users and records their exercise names,
normalized, in the shared library. Names already there are left as they are.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := withTimeout(cmd)
		defer cancel()

		planList, err := plans.NewRepo(tools.dbPool).ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list plans: %w", err)
		}
		sessionList, err := sessions.NewRepo(tools.dbPool).ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		service := tools.libraryService()
		if !service.Rebuild(ctx, planList, sessionList) {
			return errors.New("some names were not recorded, see the logs")
		}

		names, err := service.List(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("library rebuilt from %d plans and %d sessions: %d names\n", len(planList), len(sessionList), len(names))
		return nil
	},
}

var libraryListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List the library names, optionally only those containing query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := withTimeout(cmd)
		defer cancel()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		names, err := tools.libraryService().Search(ctx, query)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a name from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := withTimeout(cmd)
		defer cancel()

		if err := tools.libraryService().Remove(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("removed [%s]\n", args[0])
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryRebuildCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
}
