package fetcher

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "en-GB,en;q=0.9"

	requestTimeout = 30 * time.Second
)

// warn about the insecure retry once per process, not per request
var insecureWarning sync.Once

// TransportError reports a request that failed after all fallback attempts
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v request error: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("%v response code: %v", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client is a Fetcher backed by resty. It carries one cookie jar across all
// requests of a run, sends browser-like headers (the council site's bot filter
// returns disguised 404s without them), and on a certificate-trust failure may
// retry the identical request once with verification disabled.
type Client struct {
	strict        *resty.Client
	insecure      *resty.Client
	allowInsecure bool
}

// NewClient creates a Client for the given site. The tracking cookie is
// pre-seeded on the target host before the first request.
func NewClient(baseURL, cookieName, cookieValue string, allowInsecure bool) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if cookieName != "" {
		jar.SetCookies(base, []*http.Cookie{{Name: cookieName, Value: cookieValue, Path: "/"}})
	}

	insecure := newRestyClient(jar)
	insecure.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})

	return &Client{
		strict:        newRestyClient(jar),
		insecure:      insecure,
		allowInsecure: allowInsecure,
	}, nil
}

func newRestyClient(jar http.CookieJar) *resty.Client {
	client := resty.New()
	client.SetCookieJar(jar)
	client.SetTimeout(requestTimeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", acceptHeader)
	client.SetHeader("Accept-Language", acceptLanguage)
	return client
}

// Get implements Fetcher
func (c *Client) Get(url string) (string, error) {
	return c.do(func(client *resty.Client) (*resty.Response, error) {
		return client.R().Get(url)
	}, url)
}

// PostForm implements Fetcher
func (c *Client) PostForm(url string, data url.Values) (string, error) {
	return c.do(func(client *resty.Client) (*resty.Response, error) {
		return client.R().SetHeader("Content-Type", "application/x-www-form-urlencoded").
			SetBody(data.Encode()).
			Post(url)
	}, url)
}

func (c *Client) do(send func(*resty.Client) (*resty.Response, error), url string) (string, error) {
	res, err := send(c.strict)
	if err != nil {
		if !c.allowInsecure || !isCertificateError(err) {
			return "", &TransportError{URL: url, Err: err}
		}
		insecureWarning.Do(func() {
			log.Printf("Warning: certificate verification failed, retrying without verification\n")
		})
		res, err = send(c.insecure)
		if err != nil {
			return "", &TransportError{URL: url, Err: err}
		}
	}

	if res.StatusCode()/100 != 2 {
		return "", &TransportError{URL: url, StatusCode: res.StatusCode()}
	}
	return string(res.Body()), nil
}

// isCertificateError reports whether err is a certificate/trust validation
// failure, as opposed to a timeout, refused connection or other network error
func isCertificateError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var invalidCert x509.CertificateInvalidError
	if errors.As(err, &invalidCert) {
		return true
	}
	var hostnameErr x509.HostnameError
	return errors.As(err, &hostnameErr)
}
