package integration

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
	"github.com/vladislavdragonenkov/windowcleaning/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/windowcleaning/internal/metrics"
	"github.com/vladislavdragonenkov/windowcleaning/internal/service/cleaning"
	grpcsvc "github.com/vladislavdragonenkov/windowcleaning/internal/service/grpc"
	"github.com/vladislavdragonenkov/windowcleaning/internal/service/outbox"
	"github.com/vladislavdragonenkov/windowcleaning/internal/storage/memory"
)

var today = time.Date(2025, time.September, 1, 9, 30, 0, 0, time.UTC)

// BookingLifecycleTestSuite прогоняет клиентов и бронирования через gRPC,
// а затем публикует накопленные события через outbox worker.
type BookingLifecycleTestSuite struct {
	suite.Suite

	outboxRepo *memory.OutboxRepository
	client     *grpcsvc.BookingServiceClient
	server     *grpc.Server
	conn       *grpc.ClientConn
	logger     *log.Entry
}

func (s *BookingLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel)
	s.logger = baseLogger.WithField("component", "integration-test")

	s.outboxRepo = memory.NewOutboxRepository()
	svc := cleaning.NewService(
		memory.NewCustomerRepository(),
		memory.NewBookingRepository(),
		cleaning.WithLogger(s.logger),
		cleaning.WithOutbox(s.outboxRepo),
		cleaning.WithMetrics(metrics.NewBookingMetricsWithRegisterer(prometheus.NewRegistry())),
		cleaning.WithClock(func() time.Time { return today }),
		cleaning.WithLocation(time.UTC),
	)

	listener := bufconn.Listen(1024 * 1024)
	s.server = grpc.NewServer()
	grpcsvc.RegisterBookingServiceServer(s.server, grpcsvc.NewBookingService(svc, s.logger))
	go func() { _ = s.server.Serve(listener) }()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return listener.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.client = grpcsvc.NewBookingServiceClient(conn)
}

func (s *BookingLifecycleTestSuite) TearDownTest() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.server.Stop()
}

func (s *BookingLifecycleTestSuite) seed() {
	ctx := context.Background()
	for _, c := range []grpcsvc.Customer{
		{ID: 1, Name: "John", Windows: 10},
		{ID: 2, Name: "Paul", Windows: 5},
		{ID: 3, Name: "Ringo", Windows: 12},
		{ID: 4, Name: "George", Windows: 4},
	} {
		_, err := s.client.AddCustomer(ctx, &grpcsvc.AddCustomerRequest{Customer: &c})
		s.Require().NoError(err)
	}
	for _, b := range []grpcsvc.Booking{
		{ID: 1, CustomerID: 4, Date: "2025-10-01"},
		{ID: 2, CustomerID: 2, Date: "2026-01-10"},
		{ID: 3, CustomerID: 1, Date: "2025-10-01"},
		{ID: 4, CustomerID: 3, Date: "2025-10-01"},
	} {
		_, err := s.client.AddBooking(ctx, &grpcsvc.AddBookingRequest{Booking: &b})
		s.Require().NoError(err)
	}
}

func (s *BookingLifecycleTestSuite) total(resp *grpcsvc.TotalResponse, err error) int {
	s.Require().NoError(err)
	return resp.Total
}

func (s *BookingLifecycleTestSuite) TestTotalsAcrossDatesAndRanges() {
	s.seed()
	ctx := context.Background()

	s.Equal(26, s.total(s.client.GetTotalWindows(ctx, &grpcsvc.TotalWindowsRequest{Date: "2025-10-01"})))
	s.Equal(41, s.total(s.client.GetTotalCost(ctx, &grpcsvc.TotalCostRequest{Date: "2025-10-01"})))

	bookingID := 1
	s.Equal(9, s.total(s.client.GetTotalCost(ctx, &grpcsvc.TotalCostRequest{BookingID: &bookingID})))

	s.Equal(31, s.total(s.client.GetTotalWindows(ctx, &grpcsvc.TotalWindowsRequest{
		StartDate: "2025-10-01",
		EndDate:   "2026-01-10",
	})))
	s.Equal(51, s.total(s.client.GetTotalCost(ctx, &grpcsvc.TotalCostRequest{
		StartDate: "2025-10-01",
		EndDate:   "2026-01-10",
	})))

	// Дата без бронирований даёт ноль, а не ошибку.
	s.Equal(0, s.total(s.client.GetTotalWindows(ctx, &grpcsvc.TotalWindowsRequest{Date: "2025-12-25"})))
}

func (s *BookingLifecycleTestSuite) TestRejectedRequestsLeaveNoTrace() {
	s.seed()
	ctx := context.Background()

	john := grpcsvc.Customer{ID: 1, Name: "Johnny", Windows: 3}
	_, err := s.client.AddCustomer(ctx, &grpcsvc.AddCustomerRequest{Customer: &john})
	s.requireStatus(err, codes.AlreadyExists, "Duplicate Customer not allowed")

	past := grpcsvc.Booking{ID: 10, CustomerID: 1, Date: "2025-08-31"}
	_, err = s.client.AddBooking(ctx, &grpcsvc.AddBookingRequest{Booking: &past})
	s.requireStatus(err, codes.InvalidArgument, "Booking date cannot be in the past")

	orphan := grpcsvc.Booking{ID: 11, CustomerID: 99, Date: "2025-10-02"}
	_, err = s.client.AddBooking(ctx, &grpcsvc.AddBookingRequest{Booking: &orphan})
	s.requireStatus(err, codes.NotFound, "No customer found")

	customers, err := s.client.ListCustomers(ctx, &grpcsvc.ListCustomersRequest{})
	s.Require().NoError(err)
	s.Len(customers.Customers, 4)
	s.Equal("John", customers.Customers[0].Name)

	bookings, err := s.client.ListBookings(ctx, &grpcsvc.ListBookingsRequest{})
	s.Require().NoError(err)
	s.Len(bookings.Bookings, 4)

	// Только успешные операции попадают в outbox.
	s.Len(s.outboxRepo.AllPending(), 8)
}

func (s *BookingLifecycleTestSuite) TestSameDayBookingAccepted() {
	s.seed()

	sameDay := grpcsvc.Booking{ID: 5, CustomerID: 2, Date: "2025-09-01"}
	resp, err := s.client.AddBooking(context.Background(), &grpcsvc.AddBookingRequest{Booking: &sameDay})
	s.Require().NoError(err)
	s.Equal(sameDay, resp.Booking)
}

func (s *BookingLifecycleTestSuite) TestOutboxEventsReachKafka() {
	s.seed()

	producerMock := mocks.NewSyncProducer(s.T(), mocks.NewTestConfig())
	var envelopes []kafka.Envelope
	collect := func(msg *sarama.ProducerMessage) error {
		body, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var envelope kafka.Envelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return err
		}
		envelopes = append(envelopes, envelope)
		return nil
	}
	for range 8 {
		producerMock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(collect)
	}

	producer := kafka.NewProducerFromSync(producerMock, s.logger)
	defer func() { _ = producer.Close() }()

	worker := outbox.NewWorker(
		s.outboxRepo,
		kafka.NewOutboxPublisher(producer, ""),
		outbox.WithLogger(s.logger),
		outbox.WithMetrics(metrics.NewOutboxMetricsWithRegisterer(prometheus.NewRegistry())),
		outbox.WithRetryBaseDelay(0),
	)

	result := worker.ProcessOnce(context.Background())
	s.Equal(outbox.Result{Published: 8}, result)
	s.Empty(s.outboxRepo.AllPending())

	s.Require().Len(envelopes, 8)
	s.Equal(domain.EventTypeCustomerRegistered, envelopes[0].EventType)
	s.Equal(domain.EventTypeBookingCreated, envelopes[7].EventType)
	s.Equal("4", envelopes[7].AggregateID)
	s.JSONEq(`{"booking_id":4,"customer_id":3,"date":"2025-10-01"}`, string(envelopes[7].Payload))
}

func (s *BookingLifecycleTestSuite) requireStatus(err error, code codes.Code, message string) {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok, "expected gRPC status, got %v", err)
	s.Equal(code, st.Code())
	s.Equal(message, st.Message())
}

func TestBookingLifecycle(t *testing.T) {
	suite.Run(t, new(BookingLifecycleTestSuite))
}
