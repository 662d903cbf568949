package webclient

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/rs/zerolog/log"
)

// DiskCache is an http.RoundTripper keeping successful responses on disk.
//
// Entries are keyed by the current period, so the cache expires every day
// (or month, or year) without any cleanup.
type DiskCache struct {
	Base   http.RoundTripper // http.DefaultTransport when nil
	Dir    string            // os.TempDir() when empty
	Period date.Period
	// Today returns the current day, date.Today when nil.
	Today func() date.Date
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *DiskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := c.key(req)
	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	base := c.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache
	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write ignored")
	}
	return resp, nil
}

func (c *DiskCache) key(req *http.Request) string {
	today := date.Today
	if c.Today != nil {
		today = c.Today
	}
	rangeID := date.NewRange(today(), c.Period).Identifier()
	key := fmt.Sprintf("%s %s %s", rangeID, req.Method, req.URL.String())
	return fmt.Sprintf("savesim-%s-%x", c.Period, sha1.Sum([]byte(key)))
}

func (c *DiskCache) file(key string) string {
	dir := c.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk
func (c *DiskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response to disk. DumpResponse leaves resp.Body readable.
func (c *DiskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(c.file(key), content, 0o600)
}

// Daily returns an http.Client whose responses are cached in dir for the day.
func Daily(dir string) *http.Client {
	return &http.Client{Transport: &DiskCache{Dir: dir, Period: date.Daily}}
}
