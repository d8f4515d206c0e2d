// Package schedsdk is a typed client for the animeschedule.net v3 API.
//
// Public catalogue endpoints (timetables, anime search, categories, other
// users' lists and stats) authenticate with the application token configured
// on the oauthx.Authenticator. Endpoints operating on the caller's own anime
// list require a user session; the client obtains a fresh access token per
// request through Authenticator.Token, which transparently refreshes or
// re-runs the authorization flow as needed.
//
// Every call returns the endpoint's rate limit state parsed from the
// x-ratelimit response headers alongside its result.
package schedsdk
