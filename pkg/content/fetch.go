package content

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
)

// fetchTimeout bounds a remote content download.
const fetchTimeout = 30 * time.Second

// Fetch reads raw content from a local file or an http(s) URL.
func Fetch(ctx context.Context, location string) (data []byte, err error) {
	if isURL(location) {
		data, err = fetchFromURL(ctx, location)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch content from URL: %s", location)
			return data, err
		}
		return data, err
	}

	data, err = fetchFromFile(location)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch content from file: %s", location)
		return data, err
	}

	return data, err
}

func isURL(location string) (ok bool) {
	parsed, err := url.Parse(location)
	ok = err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https")
	return ok
}

// fetchFromFile reads content from disk.
func fetchFromFile(path string) (data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("file is empty")
		return data, err
	}

	return data, err
}

// fetchFromURL downloads content over HTTP.
func fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}

	req.Header.Set("User-Agent", "portfolio-cv/1.0")
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	client := &http.Client{
		Timeout: fetchTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("fetched content is empty")
		return data, err
	}

	return data, err
}
