// Package chat answers visitor questions with a fixed list of keyword rules.
package chat

import (
	"fmt"
	"strings"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

const (
	Greeting     = "Assalamu Alaikum! Ask me about prayer times, donations, or our location."
	FallbackText = "I'm not sure about that. Please contact the office."
	FallbackRule = "fallback"
)

// Rule matches when the lowercased message contains any of its keywords.
type Rule struct {
	Name     string
	Keywords []string
	Reply    func(tt prayer.Timetable) string
}

func fixed(text string) func(prayer.Timetable) string {
	return func(prayer.Timetable) string { return text }
}

// DefaultRules are evaluated top to bottom; the first match wins.
func DefaultRules(location string) []Rule {
	return []Rule{
		{Name: "fajr", Keywords: []string{"fajr"}, Reply: func(tt prayer.Timetable) string {
			return fmt.Sprintf("Fajr is at %s.", tt[prayer.Fajr])
		}},
		{Name: "maghrib", Keywords: []string{"maghrib", "iftar"}, Reply: func(tt prayer.Timetable) string {
			return fmt.Sprintf("Maghrib/Iftar is at %s.", tt[prayer.Maghrib])
		}},
		{Name: "isha", Keywords: []string{"isha"}, Reply: func(tt prayer.Timetable) string {
			return fmt.Sprintf("Isha is at %s.", tt[prayer.Isha])
		}},
		{Name: "jummah", Keywords: []string{"jummah", "friday"}, Reply: func(tt prayer.Timetable) string {
			return fmt.Sprintf("Jummah prayer is at %s.", tt[prayer.Jummah])
		}},
		{Name: "times", Keywords: []string{"time", "prayer"}, Reply: func(tt prayer.Timetable) string {
			parts := make([]string, 0, len(prayer.Rotation))
			for _, name := range prayer.Rotation {
				parts = append(parts, fmt.Sprintf("%s: %s", name.Title(), tt[name]))
			}
			return strings.Join(parts, ", ") + "."
		}},
		{Name: "location", Keywords: []string{"location", "where"}, Reply: fixed(fmt.Sprintf("We are located in %s. Check the map section!", location))},
		{Name: "donate", Keywords: []string{"donate", "zakat"}, Reply: fixed("You can donate Zakat or Sadaqah on our Donation page.")},
		{Name: "course", Keywords: []string{"course", "quran"}, Reply: fixed("Quran classes are held every Tuesday and Thursday after Asr.")},
		{Name: "greeting", Keywords: []string{"hello", "salam"}, Reply: fixed("Wa Alaikum Assalam! How can I help you today?")},
	}
}

type Reply struct {
	Text string
	Rule string
}

type Responder struct {
	rules []Rule
}

func NewResponder(rules []Rule) *Responder {
	return &Responder{rules: rules}
}

// Respond picks the first rule whose keyword appears in message, reading prayer
// times from tt.
func (r *Responder) Respond(message string, tt prayer.Timetable) Reply {
	msg := strings.ToLower(message)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(msg, kw) {
				return Reply{Text: rule.Reply(tt), Rule: rule.Name}
			}
		}
	}
	return Reply{Text: FallbackText, Rule: FallbackRule}
}
