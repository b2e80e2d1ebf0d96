// Package commands содержит команды wcsctl: клиента gRPC API сервиса
// бронирований мойки окон.
package commands
