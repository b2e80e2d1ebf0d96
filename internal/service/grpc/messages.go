package grpcsvc

import (
	"cloud.google.com/go/civil"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

// Customer — клиент в формате API.
type Customer struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Windows int    `json:"windows"`
}

// Booking — бронирование в формате API. Date в формате YYYY-MM-DD.
type Booking struct {
	ID         int    `json:"id"`
	CustomerID int    `json:"customer_id"`
	Date       string `json:"date"`
}

type AddCustomerRequest struct {
	Customer *Customer `json:"customer"`
}

type GetCustomerRequest struct {
	ID int `json:"id"`
}

type CustomerResponse struct {
	Customer Customer `json:"customer"`
}

type ListCustomersRequest struct{}

type ListCustomersResponse struct {
	Customers []Customer `json:"customers"`
}

type FindCustomerIDRequest struct {
	Name string `json:"name"`
}

type FindCustomerIDResponse struct {
	CustomerID int `json:"customer_id"`
}

type AddBookingRequest struct {
	Booking *Booking `json:"booking"`
}

type GetBookingRequest struct {
	ID int `json:"id"`
}

type BookingResponse struct {
	Booking Booking `json:"booking"`
}

// ListBookingsRequest выбирает бронирования по одному фильтру. Приоритет:
// customer_name, customer_id, date, затем диапазон start_date..end_date.
// Без фильтров возвращаются все бронирования.
type ListBookingsRequest struct {
	CustomerName string `json:"customer_name,omitempty"`
	CustomerID   *int   `json:"customer_id,omitempty"`
	Date         string `json:"date,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

type ListBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}

// TotalWindowsRequest считает окна за дату или за диапазон, если date пуст.
type TotalWindowsRequest struct {
	Date      string `json:"date,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// TotalCostRequest считает стоимость одного бронирования, даты или диапазона.
type TotalCostRequest struct {
	BookingID *int   `json:"booking_id,omitempty"`
	Date      string `json:"date,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type TotalResponse struct {
	Total int `json:"total"`
}

func customerFromDomain(c domain.Customer) Customer {
	return Customer{ID: c.ID, Name: c.Name, Windows: c.Windows}
}

func customersFromDomain(customers []domain.Customer) []Customer {
	result := make([]Customer, 0, len(customers))
	for _, c := range customers {
		result = append(result, customerFromDomain(c))
	}
	return result
}

func (c *Customer) toDomain() *domain.Customer {
	if c == nil {
		return nil
	}
	return &domain.Customer{ID: c.ID, Name: c.Name, Windows: c.Windows}
}

func bookingFromDomain(b domain.Booking) Booking {
	return Booking{ID: b.ID, CustomerID: b.CustomerID, Date: formatDate(b.Date)}
}

func bookingsFromDomain(bookings []domain.Booking) []Booking {
	result := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, bookingFromDomain(b))
	}
	return result
}

func (b *Booking) toDomain() (*domain.Booking, error) {
	if b == nil {
		return nil, nil
	}
	date, err := parseDate("date", b.Date)
	if err != nil {
		return nil, err
	}
	return &domain.Booking{ID: b.ID, CustomerID: b.CustomerID, Date: date}, nil
}

// parseDate превращает пустую строку в отсутствующую дату, а неразборчивую строку в InvalidArgument.
func parseDate(field, value string) (civil.Date, error) {
	if value == "" {
		return civil.Date{}, nil
	}
	date, err := civil.ParseDate(value)
	if err != nil || !date.IsValid() {
		return civil.Date{}, status.Errorf(codes.InvalidArgument, "%s must be a date in YYYY-MM-DD format, got %q", field, value)
	}
	return date, nil
}

func formatDate(d civil.Date) string {
	if d == (civil.Date{}) {
		return ""
	}
	return d.String()
}
