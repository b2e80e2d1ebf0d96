package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

// customerRepositoryInMemory — in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[int]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий клиентов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[int]domain.Customer),
	}
}

// Save сохраняет клиента, если ID ещё не занят. Проверка и вставка идут под одной блокировкой.
func (r *customerRepositoryInMemory) Save(_ context.Context, customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := domain.RequireNoDuplicateKey(r.items, customer.ID, "Customer"); err != nil {
		return err
	}
	r.items[customer.ID] = customer
	return nil
}

func (r *customerRepositoryInMemory) FindByID(_ context.Context, id int) (domain.Customer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	return customer, ok, nil
}

func (r *customerRepositoryInMemory) FindAll(_ context.Context) ([]domain.Customer, error) {
	return r.filter(func(domain.Customer) bool { return true }), nil
}

// FindByName ищет по точному совпадению имени с учётом регистра.
func (r *customerRepositoryInMemory) FindByName(_ context.Context, name string) ([]domain.Customer, error) {
	return r.filter(func(c domain.Customer) bool { return c.Name == name }), nil
}

func (r *customerRepositoryInMemory) filter(match func(domain.Customer) bool) []domain.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.items))
	for _, customer := range r.items {
		if match(customer) {
			result = append(result, customer)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
