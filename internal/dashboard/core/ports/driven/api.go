package driven

import "context"

// IAPIClient performs one JSON request against the backend. body is encoded
// when non-nil and the response is decoded into out when out is non-nil.
type IAPIClient interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// ITokenSource supplies the bearer token attached to requests.
type ITokenSource interface {
	Token(ctx context.Context) (string, error)
}
