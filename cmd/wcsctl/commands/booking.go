package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	grpcsvc "github.com/vladislavdragonenkov/windowcleaning/internal/service/grpc"
)

func bookingCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Manage bookings",
	}
	cmd.AddCommand(bookingAddCmd(opts), bookingGetCmd(opts), bookingListCmd(opts))
	return cmd
}

func bookingAddCmd(opts *rootOptions) *cobra.Command {
	var booking grpcsvc.Booking

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a cleaning for an existing customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.call(cmd, func(ctx context.Context, client *grpcsvc.BookingServiceClient) error {
				resp, err := client.AddBooking(ctx, &grpcsvc.AddBookingRequest{Booking: &booking})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp.Booking)
			})
		},
	}
	cmd.Flags().IntVar(&booking.ID, "id", 0, "booking id (positive)")
	cmd.Flags().IntVar(&booking.CustomerID, "customer-id", 0, "id of the booked customer")
	cmd.Flags().StringVar(&booking.Date, "date", "", "cleaning date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("customer-id")
	return cmd
}

func bookingGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show a booking by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return opts.call(cmd, func(ctx context.Context, client *grpcsvc.BookingServiceClient) error {
				resp, err := client.GetBooking(ctx, &grpcsvc.GetBookingRequest{ID: id})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp.Booking)
			})
		},
	}
}

func bookingListCmd(opts *rootOptions) *cobra.Command {
	var (
		req        grpcsvc.ListBookingsRequest
		customerID int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings, optionally filtered by customer, date or date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("customer-id") {
				req.CustomerID = &customerID
			}
			return opts.call(cmd, func(ctx context.Context, client *grpcsvc.BookingServiceClient) error {
				resp, err := client.ListBookings(ctx, &req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp.Bookings)
			})
		},
	}
	cmd.Flags().StringVar(&req.CustomerName, "customer-name", "", "bookings of customers with this exact name")
	cmd.Flags().IntVar(&customerID, "customer-id", 0, "bookings of this customer")
	cmd.Flags().StringVar(&req.Date, "date", "", "bookings on this date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "range end, YYYY-MM-DD")
	cmd.MarkFlagsMutuallyExclusive("customer-name", "customer-id", "date", "start")
	cmd.MarkFlagsMutuallyExclusive("customer-name", "customer-id", "date", "end")
	cmd.MarkFlagsRequiredTogether("start", "end")
	return cmd
}
