package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	grpcsvc "github.com/vladislavdragonenkov/windowcleaning/internal/service/grpc"
)

const (
	defaultAddr    = "localhost:50051"
	defaultTimeout = 5 * time.Second
)

type rootOptions struct {
	addr    string
	timeout time.Duration
}

// Execute запускает корневую команду с аргументами процесса.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand собирает дерево команд wcsctl.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "wcsctl",
		Short:         "Command line client for the window cleaning booking service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.addr, "addr", defaultAddr, "gRPC address of the booking service")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "per-call timeout")

	root.AddCommand(customerCmd(opts), bookingCmd(opts), totalsCmd(opts), versionCmd())
	return root
}

// call открывает соединение, выполняет fn с таймаутом и закрывает соединение.
func (o *rootOptions) call(cmd *cobra.Command, fn func(ctx context.Context, client *grpcsvc.BookingServiceClient) error) error {
	conn, err := grpc.NewClient(o.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", o.addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()

	if err := fn(ctx, grpcsvc.NewBookingServiceClient(conn)); err != nil {
		if st, ok := status.FromError(err); ok {
			return fmt.Errorf("%s: %s", st.Code(), st.Message())
		}
		return err
	}
	return nil
}

func printJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
