package notify

import (
	"fmt"
	"strings"

	"binchecker/models"
)

// shortDateLayout renders e.g. "Wed 25 Feb" for the multi-bin list
const shortDateLayout = "Mon 02 Jan"

// TestMessage is sent when the operator forces a test notification
const TestMessage = "✅ Binchecker test: Telegram working."

// FormatReminder renders the reminder text for a non-empty set of due
// collections. One bin gets the full singular phrasing; several bins get one
// compact line each, since the singular wording reads poorly pluralized.
func FormatReminder(due []models.CollectionRecord) string {
	if len(due) == 1 {
		b := due[0]
		return fmt.Sprintf(
			"🗑️ BIN DAY TOMORROW\n\n%s bin\n📅 %s %s\n\nPut it out tonight 👌",
			b.BinType, b.DayName, b.RawDate)
	}

	lines := []string{"🗑️ BIN DAY TOMORROW", ""}
	for _, b := range due {
		lines = append(lines, fmt.Sprintf("%s bin — %s", b.BinType, b.Date.Format(shortDateLayout)))
	}
	lines = append(lines, "", "Put them out tonight 👌")
	return strings.Join(lines, "\n")
}
