package domain

import (
	"context"

	"cloud.google.com/go/civil"
)

// CustomerRepository описывает требования к хранилищу клиентов.
// Отсутствие записи не является ошибкой: Find* возвращают ok=false или пустой срез.
type CustomerRepository interface {
	// Save сохраняет нового клиента. Возвращает ErrDuplicateEntity, если ID уже занят.
	Save(ctx context.Context, customer Customer) error
	// FindByID возвращает клиента и признак его наличия.
	FindByID(ctx context.Context, id int) (Customer, bool, error)
	// FindAll возвращает всех клиентов.
	FindAll(ctx context.Context) ([]Customer, error)
	// FindByName возвращает клиентов с точным (регистрозависимым) совпадением имени.
	FindByName(ctx context.Context, name string) ([]Customer, error)
}

// BookingRepository описывает требования к хранилищу бронирований.
type BookingRepository interface {
	// Save сохраняет новое бронирование. Возвращает ErrDuplicateEntity, если ID уже занят.
	Save(ctx context.Context, booking Booking) error
	FindByID(ctx context.Context, id int) (Booking, bool, error)
	FindAll(ctx context.Context) ([]Booking, error)
	FindByDate(ctx context.Context, date civil.Date) ([]Booking, error)
	// FindByCustomerID не проверяет существование клиента.
	FindByCustomerID(ctx context.Context, customerID int) ([]Booking, error)
	// FindByDateRange возвращает бронирования с start <= date <= end.
	FindByDateRange(ctx context.Context, start, end civil.Date) ([]Booking, error)
}
