package source

import (
	"errors"
	"fmt"
)

var UnsupportedSourceError = errors.New("Source cannot be used for this lookup")

var NotFoundError = errors.New("Could not find a matching record")

// NetworkFailure is an upstream request that failed or returned a non 2xx status
type NetworkFailure struct {
	URL        string
	StatusCode int
	Err        error
}

func (n *NetworkFailure) Error() string {
	if n.Err != nil {
		return fmt.Sprintf("request to %s failed: %s", n.URL, n.Err)
	}

	return fmt.Sprintf("request to %s returned status %d", n.URL, n.StatusCode)
}

func (n *NetworkFailure) Unwrap() error {
	return n.Err
}
