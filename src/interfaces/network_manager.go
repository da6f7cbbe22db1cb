package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for outbound HTTP requests.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a single GET request to url with query parameters.
	// Returns the body of a 200 response, or a typed error from helpers.
	Get(ctx context.Context, url string, params map[string]string) ([]byte, error)
}
