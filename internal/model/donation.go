package model

var DonationCategories = []string{"Masjid Fund", "Zakat", "Sadaqah", "Education"}

type DonationSummary struct {
	Goal       int      `json:"goal"`
	Current    int      `json:"current"`
	Progress   float64  `json:"progress"` // percent, capped at 100
	Categories []string `json:"categories"`
}

func NewDonationSummary(goal, current int) DonationSummary {
	progress := 0.0
	if goal > 0 {
		progress = float64(current) / float64(goal) * 100
	}
	if progress > 100 {
		progress = 100
	}
	return DonationSummary{
		Goal:       goal,
		Current:    current,
		Progress:   progress,
		Categories: DonationCategories,
	}
}
