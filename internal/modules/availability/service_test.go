package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelindigo/internal/domain"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) ListTableReservations(ctx context.Context, userID int64) ([]domain.TableReservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TableReservation), args.Error(1)
}

func (m *MockReservationRepository) ListSalonReservations(ctx context.Context, userID int64) ([]domain.SalonReservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalonReservation), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Table), args.Error(1)
}

func (m *MockCatalogRepository) ListSalons(ctx context.Context) ([]domain.Salon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Salon), args.Error(1)
}

func newTestService() (*Service, *MockReservationRepository, *MockCatalogRepository) {
	res := new(MockReservationRepository)
	cat := new(MockCatalogRepository)
	return NewService(res, cat, DefaultDurations(), time.UTC), res, cat
}

func TestService_CheckFetchesEveryTime(t *testing.T) {
	svc, res, _ := newTestService()
	ctx := context.Background()

	res.On("ListTableReservations", ctx, int64(0)).Return([]domain.TableReservation{
		{ID: 1, Table: domain.Ref{ID: 7}, StartsAt: "2026-05-02T19:00:00", Status: domain.ReservationConfirmed},
	}, nil).Once()
	res.On("ListTableReservations", ctx, int64(0)).Return([]domain.TableReservation{}, nil).Once()

	c := Candidate{Date: "2026-05-02", Time: "20:30", ResourceID: 7, Category: CategoryTable}
	first, err := svc.Check(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, Status{Occupied: true, FreeAt: "21:00"}, first)

	second, err := svc.Check(ctx, c)
	require.NoError(t, err)
	assert.False(t, second.Occupied)
	res.AssertNumberOfCalls(t, "ListTableReservations", 2)
}

func TestService_CheckUnsetSkipsNetwork(t *testing.T) {
	svc, res, _ := newTestService()
	got, err := svc.Check(context.Background(), Candidate{ResourceID: 7, Category: CategoryTable})
	require.NoError(t, err)
	assert.False(t, got.Occupied)
	res.AssertNotCalled(t, "ListTableReservations", mock.Anything, mock.Anything)
}

func TestService_DayBookingsConvertsOffsets(t *testing.T) {
	lima := time.FixedZone("PET", -5*60*60)
	res := new(MockReservationRepository)
	svc := NewService(res, new(MockCatalogRepository), DefaultDurations(), lima)
	ctx := context.Background()

	res.On("ListSalonReservations", ctx, int64(0)).Return([]domain.SalonReservation{
		{ID: 1, Salon: domain.Ref{ID: 2}, StartsAt: "2026-05-03T01:00:00Z", Status: domain.ReservationPending},
		{ID: 2, Salon: domain.Ref{ID: 2}, StartsAt: "2026-05-02T10:00:00", Status: domain.ReservationCancelled},
		{ID: 3, Salon: domain.Ref{ID: 2}, StartsAt: "garbage", Status: domain.ReservationPending},
	}, nil)

	day, err := svc.DayBookings(ctx, CategorySalon, "2026-05-02")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, 20, day[0].Start.Hour())
}

func TestService_TableBoardFiltersByCapacity(t *testing.T) {
	svc, res, cat := newTestService()
	ctx := context.Background()

	cat.On("ListTables", ctx).Return([]domain.Table{
		{ID: 1, Number: 1, Capacity: 2},
		{ID: 2, Number: 2, Capacity: 4},
		{ID: 3, Number: 3, Capacity: 6},
	}, nil)
	res.On("ListTableReservations", ctx, int64(0)).Return([]domain.TableReservation{
		{ID: 9, Table: domain.Ref{ID: 3}, StartsAt: "2026-05-02T19:00", Status: domain.ReservationConfirmed},
	}, nil)

	board, err := svc.TableBoard(ctx, "2026-05-02", "20:00", 4)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, int64(2), board[0].ResourceID)
	assert.False(t, board[0].Occupied)
	assert.True(t, board[1].Occupied)
	assert.Equal(t, "21:00", board[1].FreeAt)
}

func TestService_SalonBoardWithoutSlotSkipsReservations(t *testing.T) {
	svc, res, cat := newTestService()
	ctx := context.Background()
	cat.On("ListSalons", ctx).Return([]domain.Salon{{ID: 1, Name: "Cristal", Capacity: 120}}, nil)

	board, err := svc.SalonBoard(ctx, "2026-05-02", "")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "Cristal", board[0].Label)
	res.AssertNotCalled(t, "ListSalonReservations", mock.Anything, mock.Anything)
}

func TestService_BackendErrorPropagates(t *testing.T) {
	svc, res, _ := newTestService()
	ctx := context.Background()
	boom := errors.New("boom")
	res.On("ListTableReservations", ctx, int64(0)).Return(nil, boom)

	_, err := svc.Check(ctx, Candidate{Date: "2026-05-02", Time: "19:00", ResourceID: 1, Category: CategoryTable})
	assert.ErrorIs(t, err, boom)
}
