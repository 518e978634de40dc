package parser

import (
	"strings"
	"time"

	"binchecker/models"

	"github.com/PuerkitoBio/goquery"
)

// dateLayout matches the site's rendering, e.g. "25 February 2026"
const dateLayout = "2 January 2006"

// cardSelector marks one upcoming collection on the schedule page
const cardSelector = "div.ncc-bin-calendar"

// ParseCollections extracts the upcoming collections from the schedule page.
// It never fails: cards with fewer than three text fields or an unparsable
// date are site noise and are skipped. Document order is preserved.
func ParseCollections(html string) []models.CollectionRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var records []models.CollectionRecord

	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		var fields []string
		card.Find("p").Each(func(_ int, p *goquery.Selection) {
			fields = append(fields, strings.TrimSpace(p.Text()))
		})
		if len(fields) < 3 {
			return
		}

		binType, dayName, rawDate := fields[0], fields[1], fields[2]
		if binType == "" || dayName == "" || rawDate == "" {
			return
		}

		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			return
		}

		records = append(records, models.CollectionRecord{
			BinType: binType,
			DayName: dayName,
			Date:    date,
			RawDate: rawDate,
		})
	})

	return records
}
