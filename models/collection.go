package models

import "time"

// CollectionRecord represents one upcoming bin collection as announced by the
// council website. A record is only constructed when the source card carried
// all three fields and the date text parsed.
type CollectionRecord struct {
	BinType string    // e.g. "General", "Recycling", "Garden" — site-controlled vocabulary
	DayName string    // weekday name as rendered by the site, kept for display
	Date    time.Time // collection date at day granularity
	RawDate string    // original date text, kept for display
}

// AddressOption is one selectable entry from the address dropdown.
// Label is the human-readable text used for matching, Value is the
// form-submission token.
type AddressOption struct {
	Label string
	Value string
}
