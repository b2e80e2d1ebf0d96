package domain

const (
	// CostPerWindow — стоимость мойки одного окна в условных единицах.
	CostPerWindow = 1
	// CostPerProperty — фиксированная плата за выезд на объект.
	CostPerProperty = 5
)

// Customer описывает клиента и количество окон, которые моются за один визит.
type Customer struct {
	// ID назначается вызывающей стороной и не меняется после создания.
	ID int
	// Name не обязан быть уникальным.
	Name string
	// Windows — количество окон за визит, может быть нулевым.
	Windows int
}

// Validate проверяет структурные инварианты клиента.
func (c Customer) Validate() error {
	switch {
	case c.ID < 1:
		return NewError(ErrInvalidCustomer, "Customer id must be greater than zero")
	case c.Name == "":
		return NewError(ErrInvalidCustomer, "Customer name is required")
	case c.Windows < 0:
		return NewError(ErrInvalidCustomer, "Customer window count must be non-negative")
	}
	return nil
}

// VisitCost возвращает стоимость одного визита к клиенту.
// Клиент без окон оплачивает только выезд.
func (c Customer) VisitCost() int {
	return c.Windows*CostPerWindow + CostPerProperty
}
