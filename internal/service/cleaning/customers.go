package cleaning

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

// AddCustomer регистрирует нового клиента.
// Клиент с нулём окон допустим и оплачивает только выезд.
func (s *Service) AddCustomer(ctx context.Context, customer *domain.Customer) (err error) {
	defer func(started time.Time) { s.observe(opAddCustomer, started, err) }(time.Now())

	if err := domain.RequireNotNull(customer, "Customer"); err != nil {
		return err
	}
	if err := customer.Validate(); err != nil {
		return err
	}
	if err := s.customers.Save(ctx, *customer); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordCustomerRegistered()
	}
	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"windows":     customer.Windows,
	}).Info("customer registered")

	s.enqueueEvent(domain.AggregateTypeCustomer, customer.ID, domain.EventTypeCustomerRegistered, customerRegisteredPayload{
		CustomerID: customer.ID,
		Name:       customer.Name,
		Windows:    customer.Windows,
	})
	return nil
}

// GetCustomer возвращает клиента или ErrCustomerNotFound.
func (s *Service) GetCustomer(ctx context.Context, id int) (_ domain.Customer, err error) {
	defer func(started time.Time) { s.observe(opGetCustomer, started, err) }(time.Now())
	return s.getCustomer(ctx, id)
}

// GetAllCustomers возвращает всех зарегистрированных клиентов.
func (s *Service) GetAllCustomers(ctx context.Context) (_ []domain.Customer, err error) {
	defer func(started time.Time) { s.observe(opGetAllCustomers, started, err) }(time.Now())

	customers, err := s.customers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// GetCustomerIDByName находит единственного клиента с именем name.
// Имена в хранилище не уникальны, но здесь требуется ровно одно совпадение.
func (s *Service) GetCustomerIDByName(ctx context.Context, name string) (_ int, err error) {
	defer func(started time.Time) { s.observe(opGetCustomerIDByName, started, err) }(time.Now())
	return s.getCustomerIDByName(ctx, name)
}

func (s *Service) getCustomer(ctx context.Context, id int) (domain.Customer, error) {
	customer, ok, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("find customer %d: %w", id, err)
	}
	if !ok {
		return domain.Customer{}, domain.NewCustomerNotFound()
	}
	return customer, nil
}

func (s *Service) getCustomerIDByName(ctx context.Context, name string) (int, error) {
	// Пустое имя считается отсутствующим аргументом, а не именем без совпадений.
	if err := domain.RequireNotNull(name, "name"); err != nil {
		return 0, err
	}

	customers, err := s.customers.FindByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("find customers by name: %w", err)
	}

	switch len(customers) {
	case 0:
		return 0, domain.NewCustomerNotFound()
	case 1:
		return customers[0].ID, nil
	default:
		return 0, domain.NewError(domain.ErrMultipleCustomersFound, "Multiple customers found")
	}
}
