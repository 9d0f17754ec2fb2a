package api

import "context"

// Endpoint binds a route template and method to the body type B it accepts
// and the payload type P it answers with.
type Endpoint[B, P any] struct {
	Route  string
	Method string
}

// Request is the typed counterpart of Init.
type Request[B any] struct {
	Body   *B
	Params map[string]string
	Query  map[string]any
}

// Call sends req to ep and returns the decoded payload. A success without a
// value yields the zero P.
func Call[B, P any](ctx context.Context, c *Client, ep Endpoint[B, P], req Request[B]) (P, error) {
	var payload P

	init := Init{Params: req.Params, Query: req.Query}
	if req.Body != nil {
		init.Body = req.Body
	}

	if err := c.Call(ctx, ep.Route, ep.Method, init, &payload); err != nil {
		var zero P
		return zero, err
	}
	return payload, nil
}
