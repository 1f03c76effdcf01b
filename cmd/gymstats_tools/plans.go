package main

import (
	"errors"
	"fmt"

	"github.com/2beens/gymtracker/internal/gymstats/plans"

	"github.com/spf13/cobra"
)

var userID string

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Workout plan maintenance",
}

var plansNormalizeOrderCmd = &cobra.Command{
	Use:   "normalize-order",
	Short: "Rewrite the stored order of a user's plans to 0..N-1",
	Long: `Plans saved by older clients can have no order or duplicated order values.
This sorts them the way the app shows them and stores a dense order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if userID == "" {
			return errors.New("--user is required")
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()

		service := plans.NewService(plans.NewRepo(tools.dbPool), tools.libraryService(), tools.metricsManager)
		updated, err := service.NormalizeStoredOrder(ctx, userID)
		fmt.Printf("plans of [%s]: %d updated\n", userID, updated)
		return err
	},
}

func init() {
	plansNormalizeOrderCmd.Flags().StringVar(&userID, "user", "", "id of the user owning the plans")
	plansCmd.AddCommand(plansNormalizeOrderCmd)
}
