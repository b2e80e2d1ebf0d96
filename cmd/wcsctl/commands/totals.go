package commands

import (
	"context"

	"github.com/spf13/cobra"

	grpcsvc "github.com/vladislavdragonenkov/windowcleaning/internal/service/grpc"
)

func totalsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Aggregate windows and cost over bookings",
	}
	cmd.AddCommand(totalWindowsCmd(opts), totalCostCmd(opts))
	return cmd
}

func totalWindowsCmd(opts *rootOptions) *cobra.Command {
	var req grpcsvc.TotalWindowsRequest

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Total windows booked on a date or in a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.call(cmd, func(ctx context.Context, client *grpcsvc.BookingServiceClient) error {
				resp, err := client.GetTotalWindows(ctx, &req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	addDateFlags(cmd, &req.Date, &req.StartDate, &req.EndDate)
	return cmd
}

func totalCostCmd(opts *rootOptions) *cobra.Command {
	var (
		req       grpcsvc.TotalCostRequest
		bookingID int
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Total cost of a booking, a date or a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("booking-id") {
				req.BookingID = &bookingID
			}
			return opts.call(cmd, func(ctx context.Context, client *grpcsvc.BookingServiceClient) error {
				resp, err := client.GetTotalCost(ctx, &req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().IntVar(&bookingID, "booking-id", 0, "cost of a single booking")
	addDateFlags(cmd, &req.Date, &req.StartDate, &req.EndDate)
	cmd.MarkFlagsMutuallyExclusive("booking-id", "date", "start")
	return cmd
}

func addDateFlags(cmd *cobra.Command, date, start, end *string) {
	cmd.Flags().StringVar(date, "date", "", "single date, YYYY-MM-DD")
	cmd.Flags().StringVar(start, "start", "", "range start, YYYY-MM-DD")
	cmd.Flags().StringVar(end, "end", "", "range end, YYYY-MM-DD")
	cmd.MarkFlagsMutuallyExclusive("date", "start")
	cmd.MarkFlagsMutuallyExclusive("date", "end")
	cmd.MarkFlagsRequiredTogether("start", "end")
}
