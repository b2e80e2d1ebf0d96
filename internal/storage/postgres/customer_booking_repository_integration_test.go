package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

func TestCustomerRepository_PostgresFlow(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.Customer{ID: 2, Name: "Paul", Windows: 12}))
	require.NoError(t, repo.Save(ctx, domain.Customer{ID: 1, Name: "John", Windows: 10}))
	require.NoError(t, repo.Save(ctx, domain.Customer{ID: 3, Name: "john", Windows: 4}))

	err := repo.Save(ctx, domain.Customer{ID: 1, Name: "Ringo", Windows: 1})
	require.ErrorIs(t, err, domain.ErrDuplicateEntity)
	require.EqualError(t, err, "Duplicate Customer not allowed")

	got, ok, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.Customer{ID: 1, Name: "John", Windows: 10}, got)

	_, ok, err = repo.FindByID(ctx, 99)
	require.NoError(t, err)
	require.False(t, ok)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, 1, all[0].ID)

	byName, err := repo.FindByName(ctx, "John")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, 1, byName[0].ID)

	none, err := repo.FindByName(ctx, "George")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestCustomerRepository_PostgresConcurrentSameID(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Save(context.Background(), domain.Customer{ID: 7, Name: "George", Windows: 3})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			if !errors.Is(err, domain.ErrDuplicateEntity) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
}

func TestBookingRepository_PostgresFlow(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewBookingRepository(store)
	ctx := context.Background()

	oct1 := civil.Date{Year: 2025, Month: time.October, Day: 1}
	oct2 := civil.Date{Year: 2025, Month: time.October, Day: 2}
	oct3 := civil.Date{Year: 2025, Month: time.October, Day: 3}

	require.NoError(t, repo.Save(ctx, domain.Booking{ID: 1, CustomerID: 1, Date: oct1}))
	require.NoError(t, repo.Save(ctx, domain.Booking{ID: 2, CustomerID: 2, Date: oct1}))
	require.NoError(t, repo.Save(ctx, domain.Booking{ID: 3, CustomerID: 1, Date: oct2}))
	require.NoError(t, repo.Save(ctx, domain.Booking{ID: 4, CustomerID: 99, Date: oct3}))

	err := repo.Save(ctx, domain.Booking{ID: 1, CustomerID: 2, Date: oct3})
	require.ErrorIs(t, err, domain.ErrDuplicateEntity)
	require.EqualError(t, err, "Duplicate Booking not allowed")

	got, ok, err := repo.FindByID(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.Booking{ID: 3, CustomerID: 1, Date: oct2}, got)

	onDate, err := repo.FindByDate(ctx, oct1)
	require.NoError(t, err)
	require.Len(t, onDate, 2)

	forCustomer, err := repo.FindByCustomerID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, forCustomer, 2)

	// Бронирование несуществующего клиента хранится наравне с остальными.
	orphaned, err := repo.FindByCustomerID(ctx, 99)
	require.NoError(t, err)
	require.Len(t, orphaned, 1)

	inRange, err := repo.FindByDateRange(ctx, oct2, oct3)
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	require.Equal(t, 3, inRange[0].ID)
	require.Equal(t, 4, inRange[1].ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
}
