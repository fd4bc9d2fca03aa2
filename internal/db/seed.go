package db

import "github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"

type SeedAnnouncement struct {
	Title   string
	Content string
	Date    string
}

type SeedQuestion struct {
	Question string
	Answer   string
	IsPublic bool
	Category string
}

// Seed is the state a fresh store starts from. Nothing is written back.
type Seed struct {
	Timetable       prayer.Timetable
	RamadanMode     bool
	Announcements   []SeedAnnouncement
	Questions       []SeedQuestion
	DonationGoal    int
	DonationCurrent int
}

func DefaultSeed() Seed {
	return Seed{
		Timetable: prayer.DefaultTimetable(),
		Announcements: []SeedAnnouncement{
			{Title: "Ramadan Preparation", Date: "2024-03-01", Content: "Join us for a special lecture series on preparing for the holy month."},
			{Title: "Youth Soccer", Date: "2024-03-05", Content: "Registration is open for the community youth soccer league."},
		},
		Questions: []SeedQuestion{
			{Question: "When does the library open?", Answer: "The library is open daily from Asr to Isha.", IsPublic: true, Category: "General"},
			{Question: "Is Zakat due on jewelry?", Answer: "Yes, if it meets the Nisab threshold. Please consult the Imam for specific calculations.", IsPublic: true, Category: "Fiqh"},
			{Question: "Can I bring my children to Jummah?", IsPublic: true, Category: "General"},
		},
		DonationGoal:    50000,
		DonationCurrent: 32500,
	}
}
