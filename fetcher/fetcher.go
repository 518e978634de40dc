package fetcher

import "net/url"

// Fetcher interface defines the contract for HTTP transport implementations
type Fetcher interface {
	// Get retrieves the body of the given URL
	Get(url string) (string, error)
	// PostForm submits a URL-encoded form and returns the response body
	PostForm(url string, data url.Values) (string, error)
}
