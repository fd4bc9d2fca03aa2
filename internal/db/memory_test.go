package db

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) Store {
	t.Helper()
	store, err := NewMemoryStore(DefaultSeed(), fixedNow)
	require.NoError(t, err)
	return store
}

func TestNewMemoryStore_RejectsInvalidSeed(t *testing.T) {
	seed := DefaultSeed()
	seed.Timetable = prayer.DefaultTimetable()
	seed.Timetable[prayer.Fajr] = "5am"

	_, err := NewMemoryStore(seed, fixedNow)
	assert.ErrorIs(t, err, prayer.ErrInvalidTimeFormat)
}

func TestUpdateTimetable_AppliesAndRebuildsSchedule(t *testing.T) {
	store := newTestStore(t)

	updated, err := store.UpdateTimetable(prayer.Timetable{prayer.Asr: "04:45 PM", "JUMMAH": "01:45 PM"})
	require.NoError(t, err)
	assert.Equal(t, "04:45 PM", updated[prayer.Asr])
	assert.Equal(t, "01:45 PM", updated[prayer.Jummah])

	e, ok := store.GetSchedule().Entry(prayer.Asr)
	require.True(t, ok)
	assert.Equal(t, prayer.TimeOfDay{Hour: 16, Minute: 45}, e.Time)
	assert.Equal(t, "04:45 PM", e.Display)
}

func TestUpdateTimetable_AllOrNothing(t *testing.T) {
	store := newTestStore(t)
	before := store.GetTimetable()

	_, err := store.UpdateTimetable(prayer.Timetable{prayer.Asr: "04:45 PM", prayer.Isha: "25:00 PM"})
	assert.ErrorIs(t, err, prayer.ErrInvalidTimeFormat)
	assert.Equal(t, before, store.GetTimetable())

	_, err = store.UpdateTimetable(prayer.Timetable{"tahajjud": "03:00 AM"})
	assert.Error(t, err)
	assert.Equal(t, before, store.GetTimetable())
}

func TestGetTimetable_ReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	tt := store.GetTimetable()
	tt[prayer.Fajr] = "garbage"

	assert.Equal(t, "05:15 AM", store.GetTimetable()[prayer.Fajr])
}

func TestRamadanMode(t *testing.T) {
	store := newTestStore(t)
	assert.False(t, store.GetRamadanMode())
	store.SetRamadanMode(true)
	assert.True(t, store.GetRamadanMode())
}

func TestAnnouncements(t *testing.T) {
	store := newTestStore(t)

	list := store.ListAnnouncements()
	require.Len(t, list, 2)
	assert.Equal(t, "Youth Soccer", list[0].Title)

	a, err := store.CreateAnnouncement("Eid Prayer", "Eid prayer at 8 AM.", "2024-04-10")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, fixedNow(), a.CreatedAt)
	assert.Equal(t, a.ID, store.ListAnnouncements()[0].ID)

	_, err = store.CreateAnnouncement("", "x", "2024-04-10")
	assert.Error(t, err)
	_, err = store.CreateAnnouncement("x", "y", "10/04/2024")
	assert.Error(t, err)

	require.NoError(t, store.DeleteAnnouncement(a.ID))
	assert.Len(t, store.ListAnnouncements(), 2)
	assert.ErrorIs(t, store.DeleteAnnouncement(a.ID), ErrNotFound)
}

func TestQuestions(t *testing.T) {
	store := newTestStore(t)

	assert.Len(t, store.ListQuestions(AllQuestions), 3)
	assert.Len(t, store.ListQuestions(PublicAnswered), 2)
	pending := store.ListQuestions(Unanswered)
	require.Len(t, pending, 1)
	assert.Nil(t, pending[0].Answer)

	private, err := store.CreateQuestion("Private matter", "", false)
	require.NoError(t, err)
	assert.Equal(t, "General", private.Category)

	_, err = store.CreateQuestion("x", "Astrology", true)
	assert.Error(t, err)

	answered, err := store.AnswerQuestion(private.ID, "Please visit the office.")
	require.NoError(t, err)
	assert.True(t, answered.IsAnswered)
	require.NotNil(t, answered.Answer)
	assert.Equal(t, "Please visit the office.", *answered.Answer)

	// answered but private: still hidden from the public list
	assert.Len(t, store.ListQuestions(PublicAnswered), 2)

	_, err = store.AnswerQuestion("missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.DeleteQuestion(private.ID))
	_, err = store.GetQuestion(private.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDonationSummary(t *testing.T) {
	store := newTestStore(t)
	summary := store.GetDonationSummary()
	assert.Equal(t, 50000, summary.Goal)
	assert.InDelta(t, 65.0, summary.Progress, 0.001)
}

func TestConcurrentAccess(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.UpdateTimetable(prayer.Timetable{prayer.Asr: "04:40 PM"})
		}()
		go func() {
			defer wg.Done()
			_ = prayer.Resolve(store.GetSchedule(), fixedNow())
			_ = store.ListAnnouncements()
		}()
	}
	wg.Wait()
	assert.Equal(t, "04:40 PM", store.GetTimetable()[prayer.Asr])
}
