package attendees

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avein/ticketd/internal/domain"
	"github.com/avein/ticketd/internal/repository"
)

type fakeStore struct {
	byToken map[string]*domain.Attendee

	// forceLoseRace makes MarkCheckedIn report that another scan won.
	forceLoseRace bool
	raceTime      time.Time
}

func (f *fakeStore) List(_ context.Context, eventID, orderID string) ([]domain.Attendee, error) {
	var out []domain.Attendee
	for _, a := range f.byToken {
		if eventID != "" && a.EventID != eventID {
			continue
		}
		if orderID != "" && a.OrderID != orderID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStore) FindByToken(_ context.Context, token string) (*domain.Attendee, error) {
	a, ok := f.byToken[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) MarkCheckedIn(_ context.Context, id string, at time.Time) (bool, error) {
	for _, a := range f.byToken {
		if a.ID != id {
			continue
		}
		if f.forceLoseRace && !a.CheckedIn {
			a.CheckedIn = true
			a.CheckedInAt = &f.raceTime
			return false, nil
		}
		if a.CheckedIn {
			return false, nil
		}
		a.CheckedIn = true
		a.CheckedInAt = &at
		return true, nil
	}
	return false, nil
}

func newFixture() (*Service, *fakeStore) {
	store := &fakeStore{
		byToken: map[string]*domain.Attendee{
			"tok-1": {
				ID:      "a1",
				EventID: "e1",
				OrderID: "o1",
				Name:    "Alice",
				QRToken: "tok-1",
			},
		},
	}
	return New(store, nil, nil), store
}

func TestCheckIn_FirstScan(t *testing.T) {
	svc, store := newFixture()

	res, err := svc.CheckIn(context.Background(), "tok-1", "")

	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, res.Status)
	assert.Equal(t, "a1", res.AttendeeID)

	a := store.byToken["tok-1"]
	assert.True(t, a.CheckedIn)
	require.NotNil(t, a.CheckedInAt)
}

func TestCheckIn_Idempotent(t *testing.T) {
	svc, store := newFixture()

	first, err := svc.CheckIn(context.Background(), "tok-1", "")
	require.NoError(t, err)
	require.Equal(t, StatusCheckedIn, first.Status)

	stamped := *store.byToken["tok-1"].CheckedInAt

	second, err := svc.CheckIn(context.Background(), "tok-1", "")
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyCheckedIn, second.Status)
	require.NotNil(t, second.CheckedInAt)
	assert.True(t, second.CheckedInAt.Equal(stamped))

	third, err := svc.CheckIn(context.Background(), "tok-1", "")
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyCheckedIn, third.Status)
	assert.True(t, third.CheckedInAt.Equal(stamped))
}

func TestCheckIn_UnknownToken(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.CheckIn(context.Background(), "forged", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAttendeeNotFound)
}

// When a concurrent scan wins between the read and the conditional update,
// the caller gets already_checked_in with the winner's timestamp.
func TestCheckIn_ConcurrentScanWins(t *testing.T) {
	svc, store := newFixture()
	store.forceLoseRace = true
	store.raceTime = time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

	res, err := svc.CheckIn(context.Background(), "tok-1", "")

	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyCheckedIn, res.Status)
	require.NotNil(t, res.CheckedInAt)
	assert.True(t, res.CheckedInAt.Equal(store.raceTime))
}

func TestList_Filters(t *testing.T) {
	svc, store := newFixture()
	store.byToken["tok-2"] = &domain.Attendee{
		ID: "a2", EventID: "e2", OrderID: "o2", Name: "Bob", QRToken: "tok-2",
	}

	byEvent, err := svc.List(context.Background(), "e1", "")
	require.NoError(t, err)
	require.Len(t, byEvent, 1)
	assert.Equal(t, "a1", byEvent[0].ID)

	byOrder, err := svc.List(context.Background(), "", "o2")
	require.NoError(t, err)
	require.Len(t, byOrder, 1)
	assert.Equal(t, "a2", byOrder[0].ID)

	all, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
