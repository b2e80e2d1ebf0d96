package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	grpcsvc "github.com/vladislavdragonenkov/windowcleaning/internal/service/grpc"
)

func customerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}
	cmd.AddCommand(customerAddCmd(opts), customerGetCmd(opts), customerFindCmd(opts), customerListCmd(opts))
	return cmd
}

func customerAddCmd(opts *rootOptions) *cobra.Command {
	var customer grpcsvc.Customer

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.call(cmd, func(ctx context.Context, client *grpcsvc.BookingServiceClient) error {
				resp, err := client.AddCustomer(ctx, &grpcsvc.AddCustomerRequest{Customer: &customer})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp.Customer)
			})
		},
	}
	cmd.Flags().IntVar(&customer.ID, "id", 0, "customer id (positive)")
	cmd.Flags().StringVar(&customer.Name, "name", "", "customer name")
	cmd.Flags().IntVar(&customer.Windows, "windows", 0, "number of windows")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func customerGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show a customer by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return opts.call(cmd, func(ctx context.Context, client *grpcsvc.BookingServiceClient) error {
				resp, err := client.GetCustomer(ctx, &grpcsvc.GetCustomerRequest{ID: id})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp.Customer)
			})
		},
	}
}

func customerFindCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find [name]",
		Short: "Find the id of the only customer with the exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, func(ctx context.Context, client *grpcsvc.BookingServiceClient) error {
				resp, err := client.FindCustomerID(ctx, &grpcsvc.FindCustomerIDRequest{Name: args[0]})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
}

func customerListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.call(cmd, func(ctx context.Context, client *grpcsvc.BookingServiceClient) error {
				resp, err := client.ListCustomers(ctx, &grpcsvc.ListCustomersRequest{})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp.Customers)
			})
		},
	}
}
