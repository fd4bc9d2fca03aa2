// Package aladhan fetches calculated prayer times from the Al Adhan API.
package aladhan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

// Timings mirrors the subset of the API response we use. Values are "HH:MM" in
// 24-hour form, sometimes followed by a zone suffix like " (+06)".
type Timings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
	Imsak   string `json:"Imsak"`
}

type response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings Timings `json:"timings"`
	} `json:"data"`
}

type Options struct {
	BaseURL    string
	Method     int
	HTTPClient *http.Client
	Attempts   uint
	Delay      time.Duration
	CacheTTL   time.Duration
}

type Client struct {
	baseURL  string
	method   int
	http     *http.Client
	attempts uint
	delay    time.Duration
	cache    *otter.Cache[string, Timings]
}

func NewClient(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Attempts == 0 {
		opts.Attempts = 4
	}
	if opts.Delay <= 0 {
		opts.Delay = time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 6 * time.Hour
	}

	return &Client{
		baseURL:  strings.TrimSuffix(opts.BaseURL, "/"),
		method:   opts.Method,
		http:     opts.HTTPClient,
		attempts: opts.Attempts,
		delay:    opts.Delay,
		cache: otter.Must(&otter.Options[string, Timings]{
			MaximumSize:      1_000,
			ExpiryCalculator: otter.ExpiryWriting[string, Timings](opts.CacheTTL),
		}),
	}
}

// Timings returns the timings for date at the given coordinates. Successful
// responses are cached per (date, coordinates, method).
func (c *Client) Timings(ctx context.Context, date time.Time, lat, lon float64) (Timings, error) {
	day := date.Format("02-01-2006")
	key := fmt.Sprintf("%s|%.4f|%.4f|%d", day, lat, lon, c.method)
	if t, ok := c.cache.GetIfPresent(key); ok {
		return t, nil
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("method", strconv.Itoa(c.method))
	endpoint := fmt.Sprintf("%s/v1/timings/%s?%s", c.baseURL, day, q.Encode())

	var body response
	err := retry.Do(
		func() error {
			return c.fetch(ctx, endpoint, &body)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Uint("attempt", n+1).Str("url", endpoint).Msg("retrying aladhan fetch")
		}),
	)
	if err != nil {
		return Timings{}, fmt.Errorf("fetching aladhan timings: %w", err)
	}

	c.cache.Set(key, body.Data.Timings)
	return body.Data.Timings, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, out *response) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return retry.Unrecoverable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("failed to close aladhan response body")
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if resp.StatusCode != http.StatusOK {
		return retry.Unrecoverable(fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return retry.Unrecoverable(fmt.Errorf("decoding response: %w", err))
	}
	if out.Code != http.StatusOK {
		return retry.Unrecoverable(fmt.Errorf("api status %d %s", out.Code, out.Status))
	}
	return nil
}

var ErrBadTiming = errors.New("bad timing value")

// To12Hour converts "17:30" or "17:30 (+06)" to "05:30 PM".
func To12Hour(value string) (string, error) {
	value = strings.TrimSpace(value)
	if i := strings.IndexByte(value, ' '); i >= 0 {
		value = value[:i]
	}
	hh, mm, ok := strings.Cut(value, ":")
	if !ok || len(mm) != 2 {
		return "", fmt.Errorf("%w: %q", ErrBadTiming, value)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("%w: %q", ErrBadTiming, value)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: %q", ErrBadTiming, value)
	}
	return prayer.TimeOfDay{Hour: h, Minute: m}.String(), nil
}

// Timetable converts the API timings to display strings. Imsak is used for Suhoor and
// Maghrib for Iftar; Jummah is left to the masjid and never set here.
func (t Timings) Timetable() (prayer.Timetable, error) {
	pairs := []struct {
		name  prayer.Name
		value string
	}{
		{prayer.Fajr, t.Fajr},
		{prayer.Sunrise, t.Sunrise},
		{prayer.Dhuhr, t.Dhuhr},
		{prayer.Asr, t.Asr},
		{prayer.Maghrib, t.Maghrib},
		{prayer.Isha, t.Isha},
		{prayer.Suhoor, t.Imsak},
		{prayer.Iftar, t.Maghrib},
	}

	out := make(prayer.Timetable, len(pairs))
	for _, p := range pairs {
		if p.value == "" {
			if p.name.InRotation() {
				return nil, fmt.Errorf("%s: %w: missing", p.name, ErrBadTiming)
			}
			continue
		}
		s, err := To12Hour(p.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.name, err)
		}
		out[p.name] = s
	}
	return out, nil
}
