package walker

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"binchecker/config"
	"binchecker/fetcher"
	"binchecker/models"

	"github.com/PuerkitoBio/goquery"
)

// SiteBlockedError means the entry page did not contain the expected marker
// phrase: the server served a placeholder instead of the real form, which
// usually means bot detection fired. Retrying blindly will not help.
type SiteBlockedError struct {
	Marker string
}

func (e *SiteBlockedError) Error() string {
	return fmt.Sprintf("entry page is missing %q - the site likely served a bot-blocking page instead of the form", e.Marker)
}

// ParseError means an expected element (CSRF token, form action, address
// dropdown) was absent, i.e. the site's markup changed
type ParseError struct {
	What string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("couldn't find %s - site markup may have changed", e.What)
}

// AddressNotFoundError means no dropdown label contained the configured match
// text. Available carries every label seen, for operator diagnosis.
type AddressNotFoundError struct {
	Match     string
	Available []string
}

func (e *AddressNotFoundError) Error() string {
	return fmt.Sprintf("no address label contains %q; available: %s",
		e.Match, strings.Join(e.Available, "; "))
}

// Walker performs the three-step form navigation that leads to the schedule
// page. Each step submits the anti-forgery token extracted from the previous
// response, so the steps are strictly ordered.
type Walker struct {
	fetcher  fetcher.Fetcher
	base     *url.URL
	entryURL string
	postURL  string
	marker   string
	debugDir string
}

// New creates a Walker for the configured site
func New(f fetcher.Fetcher, cfg *config.Config) (*Walker, error) {
	base, err := url.Parse(cfg.Site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return &Walker{
		fetcher:  f,
		base:     base,
		entryURL: cfg.Site.BaseURL + cfg.Site.EntryPath,
		postURL:  cfg.Site.BaseURL + cfg.Site.PostcodePath,
		marker:   cfg.Site.Marker,
		debugDir: cfg.DebugDir,
	}, nil
}

// ResolveSchedulePage walks entry page → postcode submission → address
// selection and returns the final schedule page HTML as-is.
func (w *Walker) ResolveSchedulePage(postcode, addressMatch string) (string, error) {
	// Step 1: entry page carries the first CSRF token
	entryHTML, err := w.fetcher.Get(w.entryURL)
	if err != nil {
		return "", err
	}
	w.dump("1-entry.html", entryHTML)

	if !strings.Contains(entryHTML, w.marker) {
		return "", &SiteBlockedError{Marker: w.marker}
	}

	entryDoc, err := goquery.NewDocumentFromReader(strings.NewReader(entryHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse entry page: %w", err)
	}
	entryToken, err := csrfToken(entryDoc)
	if err != nil {
		return "", err
	}

	// Step 2: submit the postcode, response is the address-selection page
	addressHTML, err := w.fetcher.PostForm(w.postURL, url.Values{
		"_csrf":    {entryToken},
		"postcode": {postcode},
	})
	if err != nil {
		return "", err
	}
	w.dump("2-address.html", addressHTML)

	addressDoc, err := goquery.NewDocumentFromReader(strings.NewReader(addressHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse address page: %w", err)
	}
	addressToken, err := csrfToken(addressDoc)
	if err != nil {
		return "", err
	}

	submitURL, err := w.formAction(addressDoc)
	if err != nil {
		return "", err
	}

	options, err := addressOptions(addressDoc)
	if err != nil {
		return "", err
	}
	selected, err := matchAddress(options, addressMatch)
	if err != nil {
		return "", err
	}
	log.Printf("Selected: %s\n", selected.Label)

	// Step 3: submit the selected address, response is the schedule page
	scheduleHTML, err := w.fetcher.PostForm(submitURL, url.Values{
		"_csrf":   {addressToken},
		"address": {selected.Value},
	})
	if err != nil {
		return "", err
	}
	w.dump("3-schedule.html", scheduleHTML)

	return scheduleHTML, nil
}

// csrfToken extracts the anti-forgery token embedded in the page's form.
// Tokens are single-use: each page transition needs the token of the page
// being submitted, and the next page carries a fresh one.
func csrfToken(doc *goquery.Document) (string, error) {
	token, _ := doc.Find(`input[name="_csrf"]`).First().Attr("value")
	if token == "" {
		return "", &ParseError{What: "CSRF token"}
	}
	return token, nil
}

// formAction returns the address form's submission URL resolved against the
// site base (the action attribute is a relative URL)
func (w *Walker) formAction(doc *goquery.Document) (string, error) {
	action, ok := doc.Find("form").First().Attr("action")
	if !ok || action == "" {
		return "", &ParseError{What: "form action"}
	}
	ref, err := url.Parse(action)
	if err != nil {
		return "", fmt.Errorf("invalid form action %q: %w", action, err)
	}
	return w.base.ResolveReference(ref).String(), nil
}

// addressOptions collects the dropdown's options in document order, skipping
// placeholder entries without a value
func addressOptions(doc *goquery.Document) ([]models.AddressOption, error) {
	sel := doc.Find(`select[name="address"]`)
	if sel.Length() == 0 {
		return nil, &ParseError{What: "address dropdown"}
	}

	var options []models.AddressOption
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		value, _ := opt.Attr("value")
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		options = append(options, models.AddressOption{
			Label: strings.TrimSpace(opt.Text()),
			Value: value,
		})
	})
	return options, nil
}

// matchAddress selects the first option whose label contains the match text,
// case-insensitively. First document-order match wins.
func matchAddress(options []models.AddressOption, match string) (models.AddressOption, error) {
	needle := strings.ToLower(match)
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), needle) {
			return opt, nil
		}
	}

	labels := make([]string, 0, len(options))
	for _, opt := range options {
		labels = append(labels, opt.Label)
	}
	return models.AddressOption{}, &AddressNotFoundError{Match: match, Available: labels}
}

// dump writes an intermediate page to the debug directory, if one is
// configured. Purely diagnostic; failures are logged and ignored.
func (w *Walker) dump(name, html string) {
	if w.debugDir == "" {
		return
	}
	if err := os.MkdirAll(w.debugDir, 0o755); err != nil {
		log.Printf("Warning: failed to create debug dir: %v\n", err)
		return
	}
	if err := os.WriteFile(filepath.Join(w.debugDir, name), []byte(html), 0o644); err != nil {
		log.Printf("Warning: failed to save %s: %v\n", name, err)
	}
}
