package files

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// IsURL checks if a path is a URL (starts with http:// or https://).
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// GetFileContentsFromURL fetches file contents from a URL.
// A 404 response is reported as ErrURLNotFound, any other non-200 status as ErrGettingFileFromURL.
func GetFileContentsFromURL(client *http.Client, url string) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, "", err
	}

	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", ErrURLNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, "", fmt.Errorf("%w: %s", ErrGettingFileFromURL, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return content, contentType, nil
}

// ReadFileOrURL reads content from either a local file path or a URL.
// If the path starts with http:// or https://, it fetches from the URL using client.
// Otherwise, it reads from the local file system.
func ReadFileOrURL(client *http.Client, path string) ([]byte, error) {
	if IsURL(path) {
		content, _, err := GetFileContentsFromURL(client, path)
		return content, err
	}

	return os.ReadFile(path)
}
