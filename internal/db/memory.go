package db

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

// memStore keeps everything in process memory; a restart returns to the seed.
type memStore struct {
	mu  sync.RWMutex
	now func() time.Time

	timetable prayer.Timetable
	schedule  prayer.Schedule
	ramadan   bool

	announcements []model.Announcement
	questions     []model.Question

	donationGoal    int
	donationCurrent int
}

// compile-time check that memStore implements Store
var _ Store = (*memStore)(nil)

// NewMemoryStore builds a store from seed. The seed timetable must be valid.
func NewMemoryStore(seed Seed, now func() time.Time) (Store, error) {
	if now == nil {
		now = time.Now
	}

	tt := seed.Timetable.Clone()
	if err := tt.Validate(); err != nil {
		return nil, fmt.Errorf("seed timetable: %w", err)
	}
	schedule, err := tt.Schedule()
	if err != nil {
		return nil, fmt.Errorf("seed timetable: %w", err)
	}

	s := &memStore{
		now:             now,
		timetable:       tt,
		schedule:        schedule,
		ramadan:         seed.RamadanMode,
		donationGoal:    seed.DonationGoal,
		donationCurrent: seed.DonationCurrent,
	}

	created := now()
	for _, a := range seed.Announcements {
		s.announcements = append(s.announcements, model.Announcement{
			ID:        uuid.NewString(),
			Title:     a.Title,
			Content:   a.Content,
			Date:      a.Date,
			CreatedAt: created,
		})
	}
	for _, q := range seed.Questions {
		question := model.Question{
			ID:        uuid.NewString(),
			Question:  q.Question,
			IsPublic:  q.IsPublic,
			Category:  q.Category,
			CreatedAt: created,
		}
		if q.Answer != "" {
			answer := q.Answer
			question.Answer = &answer
			question.IsAnswered = true
			question.AnsweredAt = &created
		}
		s.questions = append(s.questions, question)
	}

	return s, nil
}

func (s *memStore) GetTimetable() prayer.Timetable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timetable.Clone()
}

func (s *memStore) GetSchedule() prayer.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule
}

// UpdateTimetable merges changes into the current timetable. Either every change is applied
// or none is.
func (s *memStore) UpdateTimetable(changes prayer.Timetable) (prayer.Timetable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.timetable.Clone()
	for name, raw := range changes {
		n, ok := prayer.ParseName(string(name))
		if !ok {
			return nil, fmt.Errorf("unknown prayer %q", name)
		}
		merged[n] = raw
	}
	if err := merged.Validate(); err != nil {
		log.Warn().Err(err).Msg("rejected timetable update")
		return nil, err
	}
	schedule, err := merged.Schedule()
	if err != nil {
		return nil, err
	}

	s.timetable = merged
	s.schedule = schedule
	log.Info().Int("changed", len(changes)).Msg("timetable updated")
	return merged.Clone(), nil
}

func (s *memStore) GetRamadanMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ramadan
}

func (s *memStore) SetRamadanMode(enabled bool) {
	s.mu.Lock()
	s.ramadan = enabled
	s.mu.Unlock()
	log.Info().Bool("enabled", enabled).Msg("ramadan mode changed")
}

// ListAnnouncements returns the newest first.
func (s *memStore) ListAnnouncements() []model.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Announcement, 0, len(s.announcements))
	for i := len(s.announcements) - 1; i >= 0; i-- {
		out = append(out, s.announcements[i])
	}
	return out
}

func (s *memStore) CreateAnnouncement(title, content, date string) (model.Announcement, error) {
	if title == "" || content == "" {
		return model.Announcement{}, fmt.Errorf("title and content are required")
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return model.Announcement{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	a := model.Announcement{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Date:      date,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.announcements = append(s.announcements, a)
	s.mu.Unlock()
	return a, nil
}

func (s *memStore) DeleteAnnouncement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.announcements {
		if a.ID == id {
			s.announcements = append(s.announcements[:i], s.announcements[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memStore) ListQuestions(filter QuestionFilter) []model.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		switch filter {
		case PublicAnswered:
			if !q.IsPublic || !q.IsAnswered {
				continue
			}
		case Unanswered:
			if q.IsAnswered {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}

func (s *memStore) GetQuestion(id string) (model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return model.Question{}, ErrNotFound
}

func (s *memStore) CreateQuestion(question, category string, isPublic bool) (model.Question, error) {
	if question == "" {
		return model.Question{}, fmt.Errorf("question is required")
	}
	if category == "" {
		category = "General"
	}
	if !model.ValidCategory(category) {
		return model.Question{}, fmt.Errorf("unknown category %q", category)
	}

	q := model.Question{
		ID:        uuid.NewString(),
		Question:  question,
		IsPublic:  isPublic,
		Category:  category,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.questions = append(s.questions, q)
	s.mu.Unlock()
	return q, nil
}

func (s *memStore) AnswerQuestion(id, answer string) (model.Question, error) {
	if answer == "" {
		return model.Question{}, fmt.Errorf("answer is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.questions {
		if s.questions[i].ID != id {
			continue
		}
		answeredAt := s.now()
		s.questions[i].Answer = &answer
		s.questions[i].IsAnswered = true
		s.questions[i].AnsweredAt = &answeredAt
		return s.questions[i], nil
	}
	return model.Question{}, ErrNotFound
}

func (s *memStore) DeleteQuestion(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memStore) GetDonationSummary() model.DonationSummary {
	return model.NewDonationSummary(s.donationGoal, s.donationCurrent)
}
