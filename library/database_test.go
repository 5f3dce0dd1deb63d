package library

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempHistory(t *testing.T) *History {
	t.Helper()
	h, err := NewHistory()
	if err != nil {
		t.Fatalf("new history: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryRecordAndList(t *testing.T) {
	h := tempHistory(t)
	due := time.Date(2025, time.March, 24, 0, 0, 0, 0, time.UTC)

	require.NoError(t, h.Record(Event{MembershipID: "M001", ISBN: "isbn-1", Action: ActionBorrow, OccurredAt: fixedNow, DueDate: &due}))
	require.NoError(t, h.Record(Event{MembershipID: "M002", ISBN: "isbn-2", Action: ActionBorrow, OccurredAt: fixedNow, DueDate: &due}))
	require.NoError(t, h.Record(Event{MembershipID: "M001", ISBN: "isbn-1", Action: ActionReturn, OccurredAt: fixedNow.Add(time.Hour)}))

	all, err := h.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, e := range all {
		assert.NotEqual(t, uuid.Nil, e.ID)
	}

	mine, err := h.ForBorrower("M001")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, ActionBorrow, mine[0].Action)
	require.NotNil(t, mine[0].DueDate)
	assert.True(t, mine[0].DueDate.Equal(due))
	assert.True(t, mine[0].OccurredAt.Equal(fixedNow))
	assert.Equal(t, ActionReturn, mine[1].Action)
	assert.Nil(t, mine[1].DueDate)

	none, err := h.ForBorrower("M999")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHistoryKeepsExplicitID(t *testing.T) {
	h := tempHistory(t)
	id := uuid.New()

	require.NoError(t, h.Record(Event{ID: id, MembershipID: "M001", ISBN: "isbn-1", Action: ActionReturn, OccurredAt: fixedNow}))
	err := h.Record(Event{ID: id, MembershipID: "M001", ISBN: "isbn-1", Action: ActionReturn, OccurredAt: fixedNow})
	require.Error(t, err, "duplicate event id must be rejected")

	all, err := h.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
}

func TestHistoriesAreIndependent(t *testing.T) {
	a := tempHistory(t)
	b := tempHistory(t)

	require.NoError(t, a.Record(Event{MembershipID: "M001", ISBN: "isbn-1", Action: ActionReturn, OccurredAt: fixedNow}))

	events, err := b.All()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLibraryRecordsCirculation(t *testing.T) {
	h := tempHistory(t)
	lib := newLibrary(t, WithRecorder(h))

	_, err := lib.BorrowBook("M001", "978-0451524935")
	require.NoError(t, err)
	_, err = lib.BorrowBook("M002", "978-0451524935")
	require.NoError(t, err)
	_, err = lib.ReturnBook("M001", "978-0451524935")
	require.NoError(t, err)

	// Failed operations leave no trace.
	_, err = lib.ReturnBook("M001", "978-0451524935")
	require.ErrorIs(t, err, ErrNotBorrowed)

	events, err := h.ForBorrower("M001")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionBorrow, events[0].Action)
	assert.True(t, events[0].DueDate.Equal(time.Date(2025, time.March, 24, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, ActionReturn, events[1].Action)

	all, err := h.All()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
