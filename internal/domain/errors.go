package domain

import (
	"errors"
	"fmt"
)

// Виды доменных ошибок. Конкретные ошибки создаются через *Error и
// разворачиваются в один из этих видов, поэтому проверять их нужно через errors.Is.
var (
	// ErrNullArgument — обязательный аргумент не передан.
	ErrNullArgument = errors.New("null argument")
	// ErrInvalidCustomer — клиент не проходит структурную валидацию.
	ErrInvalidCustomer = errors.New("invalid customer")
	// ErrInvalidBooking — бронирование не проходит структурную валидацию.
	ErrInvalidBooking = errors.New("invalid booking")
	// ErrDuplicateEntity — запись с таким идентификатором уже существует.
	ErrDuplicateEntity = errors.New("duplicate entity")
	// ErrPastDate — дата бронирования раньше сегодняшней.
	ErrPastDate = errors.New("past date")
	// ErrInvalidDateRange — начало диапазона позже конца.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrCustomerNotFound — клиент не найден.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrBookingNotFound — бронирование не найдено.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrMultipleCustomersFound — поиск по имени вернул больше одного клиента.
	ErrMultipleCustomersFound = errors.New("multiple customers found")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// Error — доменная ошибка с точным текстом и видом из списка выше.
type Error struct {
	kind    error
	message string
}

// NewError создаёт доменную ошибку вида kind с сообщением message.
func NewError(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Errorf — вариант NewError с форматированием.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.message
}

// Unwrap возвращает вид ошибки.
func (e *Error) Unwrap() error {
	return e.kind
}

// Kind возвращает вид ошибки.
func (e *Error) Kind() error {
	return e.kind
}

var kinds = []error{
	ErrNullArgument,
	ErrInvalidCustomer,
	ErrInvalidBooking,
	ErrDuplicateEntity,
	ErrPastDate,
	ErrInvalidDateRange,
	ErrCustomerNotFound,
	ErrBookingNotFound,
	ErrMultipleCustomersFound,
}

// KindOf возвращает вид доменной ошибки или nil, если err не доменная.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// IsNotFound проверяет, что ошибка означает отсутствие клиента или бронирования.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) || errors.Is(err, ErrBookingNotFound)
}

// IsValidation проверяет, что ошибка вызвана некорректными входными данными.
func IsValidation(err error) bool {
	switch KindOf(err) {
	case ErrNullArgument, ErrInvalidCustomer, ErrInvalidBooking, ErrPastDate, ErrInvalidDateRange:
		return true
	default:
		return false
	}
}

// NewCustomerNotFound возвращает ошибку отсутствующего клиента.
func NewCustomerNotFound() *Error {
	return NewError(ErrCustomerNotFound, "No customer found")
}

// NewBookingNotFound возвращает ошибку отсутствующего бронирования.
func NewBookingNotFound() *Error {
	return NewError(ErrBookingNotFound, "No booking found")
}

// NewDuplicateEntity возвращает ошибку дубликата для сущности entityName.
func NewDuplicateEntity(entityName string) *Error {
	return Errorf(ErrDuplicateEntity, "Duplicate %s not allowed", entityName)
}
