// Package client talks to the JobKeeper backend over its PostgREST-style
// REST API.
//
// # Overview
//
//   - Client is the transport-agnostic contract used by services and the
//     fallback accessor: auth (SignUp, SignIn), table access (Select, Insert,
//     Update, Delete), presigned storage URLs and Ping.
//   - RESTClient implements it over net/http. Every request carries the
//     apikey header and, once signed in, a bearer access token. A 401 caused
//     by an expired access token triggers exactly one refresh-and-retry.
//
// # Error Handling
//
// Transport failures map to ErrUnavailable, authentication failures to
// ErrUnauthorized; anything else the backend rejects is returned as *APIError.
// Match with errors.Is / errors.As.
package client
