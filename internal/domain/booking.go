package domain

import "cloud.google.com/go/civil"

// Booking — запланированный визит к одному клиенту в один день.
type Booking struct {
	ID         int
	CustomerID int
	// Date — календарная дата визита; нулевое значение означает "не задана".
	Date civil.Date
}

// Validate проверяет структурные инварианты бронирования.
// Проверка даты на прошлое выполняется отдельно, см. RequireDateNotPast.
func (b Booking) Validate() error {
	switch {
	case b.ID < 1:
		return NewError(ErrInvalidBooking, "Booking id must be greater than zero")
	case b.CustomerID < 1:
		return NewError(ErrInvalidBooking, "Booking customer id must be greater than zero")
	case IsZeroDate(b.Date):
		return NewError(ErrInvalidBooking, "Booking date is required")
	}
	return nil
}

// OnDate сообщает, приходится ли бронирование ровно на date.
func (b Booking) OnDate(date civil.Date) bool {
	return b.Date == date
}

// Within сообщает, попадает ли бронирование в диапазон [start, end] включительно.
func (b Booking) Within(start, end civil.Date) bool {
	return !b.Date.Before(start) && !b.Date.After(end)
}

// IsZeroDate проверяет, что дата не задана.
func IsZeroDate(d civil.Date) bool {
	return d == civil.Date{}
}
