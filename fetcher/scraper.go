package fetcher

import "fmt"

// Fetcher interface defines the contract for fetching implementations
type Fetcher interface {
	// Fetch issues a single GET for url and returns the raw markup
	Fetch(url string) ([]byte, error)
}

// FetchError is returned when a page could not be retrieved.
// StatusCode is zero for transport failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
