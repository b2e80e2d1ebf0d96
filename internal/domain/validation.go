package domain

import "cloud.google.com/go/civil"

// RequireNotNull возвращает ErrNullArgument, если value равно нулевому значению типа
// (nil для указателей, "" для строк, пустая дата).
func RequireNotNull[T comparable](value T, name string) error {
	var zero T
	if value == zero {
		return Errorf(ErrNullArgument, "%s cannot be null", name)
	}
	return nil
}

// RequireNoDuplicateKey возвращает ErrDuplicateEntity, если key уже есть в store.
func RequireNoDuplicateKey[K comparable, V any](store map[K]V, key K, entityName string) error {
	if _, exists := store[key]; exists {
		return NewDuplicateEntity(entityName)
	}
	return nil
}

// RequireDateNotPast возвращает ErrPastDate, если date строго раньше today.
// Пустая дата пропускается: это забота RequireNotNull.
func RequireDateNotPast(date, today civil.Date) error {
	if !IsZeroDate(date) && date.Before(today) {
		return NewError(ErrPastDate, "Booking date cannot be in the past")
	}
	return nil
}

// RequireStartBeforeEnd возвращает ErrInvalidDateRange, если обе даты заданы и start позже end.
func RequireStartBeforeEnd(start, end civil.Date) error {
	if !IsZeroDate(start) && !IsZeroDate(end) && start.After(end) {
		return NewError(ErrInvalidDateRange, "Start date cannot be after end date")
	}
	return nil
}
