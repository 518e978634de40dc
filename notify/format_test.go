package notify

import (
	"strings"
	"testing"
	"time"

	"binchecker/models"
)

func TestFormatReminderSingle(t *testing.T) {
	due := []models.CollectionRecord{{
		BinType: "General",
		DayName: "Wednesday",
		Date:    time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC),
		RawDate: "25 February 2026",
	}}

	msg := FormatReminder(due)

	for _, want := range []string{"General bin", "Wednesday 25 February 2026", "Put it out tonight"} {
		if !strings.Contains(msg, want) {
			t.Errorf("single-bin message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Put them out") {
		t.Errorf("single-bin message used plural phrasing:\n%s", msg)
	}
}

func TestFormatReminderMultiple(t *testing.T) {
	due := []models.CollectionRecord{
		{
			BinType: "General",
			DayName: "Wednesday",
			Date:    time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC),
			RawDate: "25 February 2026",
		},
		{
			BinType: "Recycling",
			DayName: "Wednesday",
			Date:    time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC),
			RawDate: "25 February 2026",
		},
	}

	msg := FormatReminder(due)

	for _, want := range []string{"General bin — Wed 25 Feb", "Recycling bin — Wed 25 Feb", "Put them out tonight"} {
		if !strings.Contains(msg, want) {
			t.Errorf("multi-bin message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Put it out") {
		t.Errorf("multi-bin message used singular phrasing:\n%s", msg)
	}
}
