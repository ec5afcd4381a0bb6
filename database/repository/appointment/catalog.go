package appointmentRepo

import (
	"time"

	"voicebook/config"
)

// SlotCatalog builds the static slot catalog served by both store variants.
// Identifiers are local-time strings without a timezone suffix; everything
// downstream treats them as opaque comparison keys.
func SlotCatalog() []string {
	if len(config.AppConfig.Slots) > 0 {
		return append([]string(nil), config.AppConfig.Slots...)
	}

	days := config.AppConfig.SlotDays
	if days <= 0 {
		days = 7
	}
	hours := config.AppConfig.SlotHours
	if len(hours) == 0 {
		hours = []int{9, 10, 11, 14, 15}
	}

	var slots []string
	start := time.Now().AddDate(0, 0, 1)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		for _, h := range hours {
			slot := time.Date(d.Year(), d.Month(), d.Day(), h, 0, 0, 0, time.Local)
			slots = append(slots, slot.Format("2006-01-02T15:04:05"))
		}
	}
	return slots
}
