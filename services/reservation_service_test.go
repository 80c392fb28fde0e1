package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"bluewave-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput(roomID uint) CreateReservationInput {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return CreateReservationInput{
		RoomID:     roomID,
		UserID:     "uid-123",
		UserEmail:  "guest@example.com",
		GuestName:  "Pat Cruz",
		GuestEmail: "guest@example.com",
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, 3),
		Guests:     2,
	}
}

func TestCreateReservationHappyPath(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Cottage", 2500, 10, 5)

	res, err := svc.CreateReservation(baseInput(room.ID))
	require.NoError(t, err)

	assert.Equal(t, models.ReservationPending, res.Status)
	assert.Equal(t, "Cottage", res.RoomName)
	assert.Equal(t, 2500, res.RoomPrice)
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, 7500, res.TotalPrice)
	assert.NotEmpty(t, res.ReferenceCode)
	require.NotNil(t, res.RoomID)
	assert.Equal(t, room.ID, *res.RoomID)

	stock, _ := currentStock(t, db, room.ID)
	assert.Equal(t, 4, stock)
}

func TestCreateReservationPartialNightRoundsUp(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Cottage", 2500, 10, 5)

	in := baseInput(room.ID)
	in.CheckOut = in.CheckIn.Add(30 * time.Hour) // 1.25 days -> 2 nights

	res, err := svc.CreateReservation(in)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Nights)
	assert.Equal(t, 5000, res.TotalPrice)
}

func TestCreateReservationValidationHasNoStockSideEffect(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Cottage", 2500, 4, 5)

	in := baseInput(room.ID)
	in.CheckOut = in.CheckIn // not strictly after
	_, err := svc.CreateReservation(in)
	assert.ErrorIs(t, err, ErrValidation)

	in = baseInput(room.ID)
	in.Guests = 0
	_, err = svc.CreateReservation(in)
	assert.ErrorIs(t, err, ErrValidation)

	in = baseInput(room.ID)
	in.Guests = 5 // over capacity 4
	_, err = svc.CreateReservation(in)
	assert.ErrorIs(t, err, ErrValidation)

	stock, _ := currentStock(t, db, room.ID)
	assert.Equal(t, 5, stock)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateReservationUnknownRoomAndOutOfStock(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Cottage", 2500, 10, 0)

	_, err := svc.CreateReservation(baseInput(999))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = svc.CreateReservation(baseInput(room.ID))
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestLifecycleReleaseExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Large Villa", 12000, 12, 1)

	res, err := svc.CreateReservation(baseInput(room.ID))
	require.NoError(t, err)

	stock, status := currentStock(t, db, room.ID)
	assert.Equal(t, 0, stock)
	assert.Equal(t, models.RoomStatusUnavailable, status)

	// cancel restores the unit
	updated, err := svc.TransitionStatus(res.ID, models.ReservationCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, updated.Status)

	stock, status = currentStock(t, db, room.ID)
	assert.Equal(t, 1, stock)
	assert.Equal(t, models.RoomStatusAvailable, status)

	// cancelling again is rejected and does not release twice
	_, err = svc.TransitionStatus(res.ID, models.ReservationCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stock, _ = currentStock(t, db, room.ID)
	assert.Equal(t, 1, stock)
}

func TestConcurrentCancelsReleaseOnce(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Cottage", 2500, 10, 2)

	// two holds drain the room; a double release on the first would mint a
	// phantom unit well below totalStock, so the clamp cannot mask it
	first, err := svc.CreateReservation(baseInput(room.ID))
	require.NoError(t, err)
	_, err = svc.CreateReservation(baseInput(room.ID))
	require.NoError(t, err)

	stock, _ := currentStock(t, db, room.ID)
	require.Equal(t, 0, stock)

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.TransitionStatus(first.ID, models.ReservationCancelled)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, rejected := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInvalidTransition):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)

	stock, _ = currentStock(t, db, room.ID)
	assert.Equal(t, 1, stock)
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.ReservationPending, models.ReservationConfirmed, true},
		{models.ReservationPending, models.ReservationCancelled, true},
		{models.ReservationPending, models.ReservationCompleted, false},
		{models.ReservationConfirmed, models.ReservationCompleted, true},
		{models.ReservationConfirmed, models.ReservationCancelled, true},
		{models.ReservationConfirmed, models.ReservationPending, false},
		{models.ReservationCompleted, models.ReservationCancelled, false},
		{models.ReservationCompleted, models.ReservationPending, false},
		{models.ReservationCancelled, models.ReservationConfirmed, false},
		{models.ReservationCancelled, models.ReservationCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			db := newTestDB(t)
			inv := NewInventoryService(db)
			svc := NewReservationService(db, inv)
			room := seedRoom(t, db, "Cottage", 2500, 10, 5)

			roomID := room.ID
			res := models.Reservation{
				RoomID:   &roomID,
				RoomName: room.Name,
				Status:   tc.from,
			}
			require.NoError(t, db.Create(&res).Error)

			_, err := svc.TransitionStatus(res.ID, tc.to)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestConfirmHasNoStockEffect(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Cottage", 2500, 10, 5)

	res, err := svc.CreateReservation(baseInput(room.ID))
	require.NoError(t, err)

	_, err = svc.TransitionStatus(res.ID, models.ReservationConfirmed)
	require.NoError(t, err)

	stock, _ := currentStock(t, db, room.ID)
	assert.Equal(t, 4, stock)
}

func TestDeleteReservationDoesNotRestoreStock(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Cottage", 2500, 10, 5)

	res, err := svc.CreateReservation(baseInput(room.ID))
	require.NoError(t, err)

	stock, _ := currentStock(t, db, room.ID)
	require.Equal(t, 4, stock)

	require.NoError(t, svc.DeleteReservation(res.ID))

	// delete != cancel: the unit stays reserved
	stock, _ = currentStock(t, db, room.ID)
	assert.Equal(t, 4, stock)

	_, err = svc.GetByID(res.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	assert.ErrorIs(t, svc.DeleteReservation(res.ID), ErrReservationNotFound)
}

// Scenario from the booking desk: room with 5 units, book all five, cancel
// two, complete one, hard-delete one pending.
func TestFullBookingScenario(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Large Villa", 12000, 12, 5)

	var created []*models.Reservation
	for i := 0; i < 5; i++ {
		res, err := svc.CreateReservation(baseInput(room.ID))
		require.NoError(t, err)
		created = append(created, res)
	}

	stock, status := currentStock(t, db, room.ID)
	assert.Equal(t, 0, stock)
	assert.Equal(t, models.RoomStatusUnavailable, status)

	_, err := svc.CreateReservation(baseInput(room.ID))
	assert.ErrorIs(t, err, ErrOutOfStock)

	// cancel two
	for _, res := range created[:2] {
		_, err := svc.TransitionStatus(res.ID, models.ReservationCancelled)
		require.NoError(t, err)
	}
	stock, status = currentStock(t, db, room.ID)
	assert.Equal(t, 2, stock)
	assert.Equal(t, models.RoomStatusAvailable, status)

	// complete one (via confirmed)
	_, err = svc.TransitionStatus(created[2].ID, models.ReservationConfirmed)
	require.NoError(t, err)
	_, err = svc.TransitionStatus(created[2].ID, models.ReservationCompleted)
	require.NoError(t, err)

	stock, _ = currentStock(t, db, room.ID)
	assert.Equal(t, 3, stock)

	// hard delete a pending one: stock stays at 3
	require.NoError(t, svc.DeleteReservation(created[3].ID))
	stock, _ = currentStock(t, db, room.ID)
	assert.Equal(t, 3, stock)
}

func TestListByUser(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	room := seedRoom(t, db, "Cottage", 2500, 10, 5)

	first := baseInput(room.ID)
	_, err := svc.CreateReservation(first)
	require.NoError(t, err)

	second := baseInput(room.ID)
	second.UserID = "uid-456"
	_, err = svc.CreateReservation(second)
	require.NoError(t, err)

	mine, err := svc.ListByUser("uid-123")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "uid-123", mine[0].UserID)

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSnapshotSurvivesRoomDeletion(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	svc := NewReservationService(db, inv)
	rooms := NewRoomService(db)
	room := seedRoom(t, db, "Cottage", 2500, 10, 5)

	res, err := svc.CreateReservation(baseInput(room.ID))
	require.NoError(t, err)

	require.NoError(t, rooms.Delete(room.ID))

	got, err := svc.GetByID(res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cottage", got.RoomName)
	assert.Equal(t, 2500, got.RoomPrice)
}
