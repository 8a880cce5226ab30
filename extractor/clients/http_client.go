package clients

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	Logger "github.com/polis-analysis/postmeta/utils/log"
)

// Every outbound call is bounded; expiry surfaces as a timeout error kind
// at the adapter boundary.
const DefaultRequestTimeout = 20 * time.Second

const DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HttpClient is a thin wrapper upon http.Client carrying per-request
// headers and cookies. Construct one per extraction; it holds no state
// beyond its configuration.
type HttpClient struct {
	header  http.Header
	cookies []*http.Cookie

	client *http.Client
}

func NewHttpClient(header http.Header, cookies []*http.Cookie) *HttpClient {
	return &HttpClient{
		header:  header,
		cookies: cookies,
		client:  &http.Client{Timeout: DefaultRequestTimeout},
	}
}

// NewBrowserLikeHttpClient mimics a desktop browser. Scrape targets serve
// interstitials ("open the app" pages) to unknown agents, which breaks the
// embedded JSON the adapters rely on.
func NewBrowserLikeHttpClient(cookies []*http.Cookie) *HttpClient {
	header := http.Header{}
	header.Set("User-Agent", DesktopUserAgent)
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	header.Set("Accept-Language", "en-US,en;q=0.9")
	header.Set("Upgrade-Insecure-Requests", "1")
	return NewHttpClient(header, cookies)
}

func (c *HttpClient) Get(ctx context.Context, uri string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header = c.header.Clone()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	return c.client.Do(req)
}

// ParseCookieString converts a raw "key1=val1; key2=val2" session string
// into cookies. Malformed pairs are skipped rather than failing the whole
// string.
func ParseCookieString(raw string) []*http.Cookie {
	cookies := []*http.Cookie{}
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" || !strings.Contains(pair, "=") {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value})
	}
	return cookies
}

// IsTimeoutError reports whether err is a deadline/timeout failure from the
// transport, so adapters can map it to the timeout kind.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func IsNon200HttpResponse(res *http.Response) bool {
	return res.StatusCode >= 300
}

// Log http response if the error code is not 2XX.
func MaybeLogNon200HttpError(res *http.Response) {
	if IsNon200HttpResponse(res) {
		Logger.Log.Errorf("non-200 http code: %d for %s", res.StatusCode, res.Request.URL)
	}
}

func ReadBody(res *http.Response) (string, error) {
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
