package files

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	assert2 "github.com/stretchr/testify/assert"
)

func TestIsURL(t *testing.T) {
	assert := assert2.New(t)

	t.Run("http URL", func(t *testing.T) {
		assert.True(IsURL("http://example.com/swagger.json"))
	})

	t.Run("https URL", func(t *testing.T) {
		assert.True(IsURL("https://example.com/swagger.json"))
	})

	t.Run("file path", func(t *testing.T) {
		assert.False(IsURL("/path/to/swagger.json"))
	})

	t.Run("relative path", func(t *testing.T) {
		assert.False(IsURL("./swagger.json"))
	})

	t.Run("empty string", func(t *testing.T) {
		assert.False(IsURL(""))
	})
}

func CreateMockServer(t *testing.T, contentType, responseBody string, responseStatus int) *httptest.Server {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(responseStatus)
		_, err := w.Write([]byte(responseBody))
		if err != nil {
			t.Errorf("Error writing response: %v", err)
		}
	})
	return httptest.NewServer(handler)
}

// MockTransportWithReadError returns a response whose body fails on read
type MockTransportWithReadError struct{}

func (t *MockTransportWithReadError) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       &MockBodyWithReadError{},
	}, nil
}

type MockBodyWithReadError struct{}

func (b *MockBodyWithReadError) Close() error {
	return nil
}

func (b *MockBodyWithReadError) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

func TestGetFileContentsFromURL(t *testing.T) {
	assert := assert2.New(t)

	t.Run("invalid-url", func(t *testing.T) {
		_, _, err := GetFileContentsFromURL(nil, "unknown-url")
		assert.Error(err)
	})

	t.Run("status-error-404", func(t *testing.T) {
		mockServer := CreateMockServer(t, "text/plain", "Not Found", http.StatusNotFound)
		defer mockServer.Close()

		_, _, err := GetFileContentsFromURL(nil, mockServer.URL)
		assert.Equal(ErrURLNotFound, err)
	})

	t.Run("status-error-500", func(t *testing.T) {
		mockServer := CreateMockServer(t, "text/plain", "Server Error", http.StatusInternalServerError)
		defer mockServer.Close()

		_, _, err := GetFileContentsFromURL(nil, mockServer.URL)
		assert.True(errors.Is(err, ErrGettingFileFromURL))
		assert.Contains(err.Error(), "500")
	})

	t.Run("read-error", func(t *testing.T) {
		mockServer := CreateMockServer(t, "text/plain", "ignored", http.StatusOK)
		defer mockServer.Close()

		client := mockServer.Client()
		client.Transport = &MockTransportWithReadError{}

		_, _, err := GetFileContentsFromURL(client, mockServer.URL)
		assert.Error(err)
	})

	t.Run("happy-path-json", func(t *testing.T) {
		jsonContent := `{"paths": {}}`
		mockServer := CreateMockServer(t, "application/json", jsonContent, http.StatusOK)
		defer mockServer.Close()

		content, contentType, err := GetFileContentsFromURL(nil, mockServer.URL)
		assert.NoError(err)
		assert.Equal("application/json", contentType)
		assert.Equal(jsonContent, string(content))
	})

	t.Run("custom-http-client", func(t *testing.T) {
		mockServer := CreateMockServer(t, "application/yaml", "paths: {}", http.StatusOK)
		defer mockServer.Close()

		content, contentType, err := GetFileContentsFromURL(&http.Client{}, mockServer.URL)
		assert.NoError(err)
		assert.Equal("application/yaml", contentType)
		assert.Equal("paths: {}", string(content))
	})
}

func TestReadFileOrURL(t *testing.T) {
	assert := assert2.New(t)

	t.Run("reads-from-url", func(t *testing.T) {
		mockServer := CreateMockServer(t, "application/json", `{"paths": {}}`, http.StatusOK)
		defer mockServer.Close()

		content, err := ReadFileOrURL(nil, mockServer.URL)
		assert.NoError(err)
		assert.Equal(`{"paths": {}}`, string(content))
	})

	t.Run("reads-from-file", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "swagger.json")
		testContent := []byte(`{"paths": {}}`)
		assert.NoError(SaveFile(filePath, testContent))

		content, err := ReadFileOrURL(nil, filePath)
		assert.NoError(err)
		assert.Equal(testContent, content)
	})

	t.Run("error-on-non-existent-file", func(t *testing.T) {
		_, err := ReadFileOrURL(nil, "/non/existent/swagger.json")
		assert.Error(err)
	})
}
