// exposes a Store interface that is passed to API modules
package db

import (
	"errors"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

var ErrNotFound = errors.New("not found")

// QuestionFilter selects which questions ListQuestions returns.
type QuestionFilter int

const (
	AllQuestions QuestionFilter = iota
	PublicAnswered
	Unanswered
)

type Store interface {
	// prayer times
	GetTimetable() prayer.Timetable
	GetSchedule() prayer.Schedule
	UpdateTimetable(changes prayer.Timetable) (prayer.Timetable, error)
	GetRamadanMode() bool
	SetRamadanMode(enabled bool)

	// announcements
	ListAnnouncements() []model.Announcement
	CreateAnnouncement(title, content, date string) (model.Announcement, error)
	DeleteAnnouncement(id string) error

	// questions
	ListQuestions(filter QuestionFilter) []model.Question
	GetQuestion(id string) (model.Question, error)
	CreateQuestion(question, category string, isPublic bool) (model.Question, error)
	AnswerQuestion(id, answer string) (model.Question, error)
	DeleteQuestion(id string) error

	// donations
	GetDonationSummary() model.DonationSummary
}
