// Package grpcsvc публикует сервис клиентов и бронирований по gRPC.
package grpcsvc

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
	"github.com/vladislavdragonenkov/windowcleaning/internal/service/cleaning"
)

// BookingService реализует gRPC API поверх cleaning.Service.
type BookingService struct {
	svc    *cleaning.Service
	logger *log.Entry
}

// NewBookingService конструирует gRPC-обработчики.
func NewBookingService(svc *cleaning.Service, logger *log.Entry) *BookingService {
	if logger == nil {
		logger = log.WithField("component", "grpc-booking-service")
	}
	return &BookingService{svc: svc, logger: logger}
}

// AddCustomer регистрирует клиента.
func (s *BookingService) AddCustomer(ctx context.Context, req *AddCustomerRequest) (*CustomerResponse, error) {
	customer := req.Customer.toDomain()
	if err := s.svc.AddCustomer(ctx, customer); err != nil {
		return nil, s.toStatus(MethodAddCustomer, err)
	}
	return &CustomerResponse{Customer: customerFromDomain(*customer)}, nil
}

func (s *BookingService) GetCustomer(ctx context.Context, req *GetCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.svc.GetCustomer(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(MethodGetCustomer, err)
	}
	return &CustomerResponse{Customer: customerFromDomain(customer)}, nil
}

func (s *BookingService) ListCustomers(ctx context.Context, _ *ListCustomersRequest) (*ListCustomersResponse, error) {
	customers, err := s.svc.GetAllCustomers(ctx)
	if err != nil {
		return nil, s.toStatus(MethodListCustomers, err)
	}
	return &ListCustomersResponse{Customers: customersFromDomain(customers)}, nil
}

// FindCustomerID ищет единственного клиента по точному имени.
func (s *BookingService) FindCustomerID(ctx context.Context, req *FindCustomerIDRequest) (*FindCustomerIDResponse, error) {
	id, err := s.svc.GetCustomerIDByName(ctx, req.Name)
	if err != nil {
		return nil, s.toStatus(MethodFindCustomerID, err)
	}
	return &FindCustomerIDResponse{CustomerID: id}, nil
}

// AddBooking создаёт бронирование для существующего клиента.
func (s *BookingService) AddBooking(ctx context.Context, req *AddBookingRequest) (*BookingResponse, error) {
	booking, err := req.Booking.toDomain()
	if err != nil {
		return nil, err
	}
	if err := s.svc.AddBooking(ctx, booking); err != nil {
		return nil, s.toStatus(MethodAddBooking, err)
	}
	return &BookingResponse{Booking: bookingFromDomain(*booking)}, nil
}

func (s *BookingService) GetBooking(ctx context.Context, req *GetBookingRequest) (*BookingResponse, error) {
	booking, err := s.svc.GetBookingByID(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(MethodGetBooking, err)
	}
	return &BookingResponse{Booking: bookingFromDomain(booking)}, nil
}

func (s *BookingService) ListBookings(ctx context.Context, req *ListBookingsRequest) (*ListBookingsResponse, error) {
	var (
		bookings []domain.Booking
		err      error
	)

	switch {
	case req.CustomerName != "":
		bookings, err = s.svc.GetBookingsForCustomerName(ctx, req.CustomerName)
	case req.CustomerID != nil:
		bookings, err = s.svc.GetBookingsForCustomerID(ctx, *req.CustomerID)
	case req.Date != "":
		date, parseErr := parseDate("date", req.Date)
		if parseErr != nil {
			return nil, parseErr
		}
		bookings, err = s.svc.GetBookingsForDate(ctx, date)
	case req.StartDate != "" || req.EndDate != "":
		start, end, parseErr := parseRange(req.StartDate, req.EndDate)
		if parseErr != nil {
			return nil, parseErr
		}
		bookings, err = s.svc.GetBookingsForDateRange(ctx, start, end)
	default:
		bookings, err = s.svc.GetAllBookings(ctx)
	}
	if err != nil {
		return nil, s.toStatus(MethodListBookings, err)
	}
	return &ListBookingsResponse{Bookings: bookingsFromDomain(bookings)}, nil
}

// GetTotalWindows суммирует окна за дату; без date считает по диапазону.
func (s *BookingService) GetTotalWindows(ctx context.Context, req *TotalWindowsRequest) (*TotalResponse, error) {
	var (
		total int
		err   error
	)
	if req.Date != "" || (req.StartDate == "" && req.EndDate == "") {
		date, parseErr := parseDate("date", req.Date)
		if parseErr != nil {
			return nil, parseErr
		}
		total, err = s.svc.GetTotalWindowsForDate(ctx, date)
	} else {
		start, end, parseErr := parseRange(req.StartDate, req.EndDate)
		if parseErr != nil {
			return nil, parseErr
		}
		total, err = s.svc.GetTotalWindowsForDateRange(ctx, start, end)
	}
	if err != nil {
		return nil, s.toStatus(MethodGetTotalWindows, err)
	}
	return &TotalResponse{Total: total}, nil
}

// GetTotalCost считает стоимость бронирования, даты или диапазона.
func (s *BookingService) GetTotalCost(ctx context.Context, req *TotalCostRequest) (*TotalResponse, error) {
	var (
		total int
		err   error
	)
	switch {
	case req.BookingID != nil:
		total, err = s.svc.GetTotalCostForBooking(ctx, *req.BookingID)
	case req.Date != "" || (req.StartDate == "" && req.EndDate == ""):
		date, parseErr := parseDate("date", req.Date)
		if parseErr != nil {
			return nil, parseErr
		}
		total, err = s.svc.GetTotalCostForDate(ctx, date)
	default:
		start, end, parseErr := parseRange(req.StartDate, req.EndDate)
		if parseErr != nil {
			return nil, parseErr
		}
		total, err = s.svc.GetTotalCostForDateRange(ctx, start, end)
	}
	if err != nil {
		return nil, s.toStatus(MethodGetTotalCost, err)
	}
	return &TotalResponse{Total: total}, nil
}

// toStatus переводит ошибку сервиса в gRPC-статус, сохраняя текст доменной ошибки.
func (s *BookingService) toStatus(method string, err error) error {
	code := CodeOf(err)
	if code == codes.Internal {
		s.logger.WithError(err).WithField("method", method).Error("request failed")
		return status.Error(codes.Internal, "internal error")
	}
	s.logger.WithError(err).WithFields(log.Fields{
		"method": method,
		"code":   code.String(),
	}).Debug("request rejected")
	return status.Error(code, err.Error())
}

// CodeOf возвращает gRPC-код для доменной ошибки.
func CodeOf(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, domain.ErrDuplicateEntity):
		return codes.AlreadyExists
	case domain.IsNotFound(err):
		return codes.NotFound
	case errors.Is(err, domain.ErrMultipleCustomersFound):
		return codes.FailedPrecondition
	case domain.IsValidation(err):
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

func parseRange(startValue, endValue string) (start, end civil.Date, err error) {
	if start, err = parseDate("start_date", startValue); err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	if end, err = parseDate("end_date", endValue); err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return start, end, nil
}

var _ BookingServiceServer = (*BookingService)(nil)
