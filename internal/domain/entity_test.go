package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

func timeMonth(m int) time.Month { return time.Month(m) }

func TestCustomerValidate(t *testing.T) {
	cases := []struct {
		name     string
		customer domain.Customer
		wantErr  bool
	}{
		{name: "valid", customer: domain.Customer{ID: 1, Name: "John", Windows: 10}},
		{name: "zero windows is valid", customer: domain.Customer{ID: 1, Name: "John"}},
		{name: "zero id", customer: domain.Customer{ID: 0, Name: "John", Windows: 1}, wantErr: true},
		{name: "empty name", customer: domain.Customer{ID: 1, Windows: 1}, wantErr: true},
		{name: "negative windows", customer: domain.Customer{ID: 1, Name: "John", Windows: -1}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.customer.Validate()
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, domain.ErrInvalidCustomer) {
				t.Fatalf("expected ErrInvalidCustomer, got %v", err)
			}
		})
	}
}

func TestCustomerVisitCost(t *testing.T) {
	for _, windows := range []int{0, 1, 4, 10, 250} {
		c := domain.Customer{ID: 1, Name: "John", Windows: windows}
		if got, want := c.VisitCost(), windows+5; got != want {
			t.Errorf("VisitCost() for %d windows = %d, want %d", windows, got, want)
		}
	}
}

func TestBookingValidate(t *testing.T) {
	valid := domain.Booking{ID: 1, CustomerID: 2, Date: date(2025, 10, 1)}

	cases := []struct {
		name    string
		mut     func(b *domain.Booking)
		wantErr bool
	}{
		{name: "valid", mut: func(*domain.Booking) {}},
		{name: "zero id", mut: func(b *domain.Booking) { b.ID = 0 }, wantErr: true},
		{name: "negative customer", mut: func(b *domain.Booking) { b.CustomerID = -3 }, wantErr: true},
		{name: "absent date", mut: func(b *domain.Booking) { b.Date = date(0, 0, 0) }, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := valid
			tc.mut(&b)
			err := b.Validate()
			if tc.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr && !errors.Is(err, domain.ErrInvalidBooking) {
				t.Fatalf("expected ErrInvalidBooking, got %v", err)
			}
		})
	}
}

func TestBookingWithin(t *testing.T) {
	b := domain.Booking{ID: 1, CustomerID: 1, Date: date(2025, 10, 1)}

	if !b.Within(date(2025, 10, 1), date(2025, 10, 1)) {
		t.Error("expected booking to be within single-day range")
	}
	if !b.Within(date(2025, 9, 1), date(2025, 10, 1)) {
		t.Error("expected end of range to be inclusive")
	}
	if b.Within(date(2025, 10, 2), date(2025, 10, 31)) {
		t.Error("expected booking before range to be excluded")
	}
	if !b.OnDate(date(2025, 10, 1)) || b.OnDate(date(2025, 10, 2)) {
		t.Error("OnDate mismatch")
	}
}
