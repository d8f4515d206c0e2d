/*
Package oauthx manages the OAuth2 authorization-code session against
animeschedule.net. It owns the full token lifecycle: building the
authorization URL, coordinating the redirect callback, exchanging the
authorization code, refreshing, and handing out a valid access token to the
API client on demand.

# Typical usage

	auth, err := oauthx.New(oauthx.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		AppToken:     appToken,
		RedirectURI:  "http://localhost:8089/callback",
	})
	if err != nil {
		log.Fatal(err)
	}

	auth.AddScope("animelist")
	auth.SetCallbackServer(func(url string) error {
		fmt.Println("open in your browser:", url)
		return nil
	})

	if err := auth.Regenerate(ctx); err != nil {
		log.Fatal(err)
	}

After the session exists, protected requests obtain a token through

	token, err := auth.Token(ctx)

which refreshes (or re-runs the full flow) transparently when the stored
token has expired.

# Callback variants

The redirect leg of the flow is pluggable. SetCallback installs an arbitrary
function that receives the authorization URL and resolves to the (code,
state) pair from the redirect; SetCallbackServer starts a one-shot local
HTTP listener on the redirect URI's host and port instead, invoking the
given function (typically a browser opener) with the authorization URL once
the listener is up. Exactly one variant is active at a time.

# Concurrency

Token fields are guarded by an internal lock, so accessors and setters are
safe to call while requests are in flight. The authorization flow itself is
not serialized: two concurrent Regenerate calls race, and the record is
overwritten by whichever completes last. Callers must serialize
authorization attempts per Authenticator.

# Upstream quirk

animeschedule.net reports expires_in as a fixed 3600 seconds regardless of
the token's true remaining life, and refresh tokens share that window. The
reported value is stored as-is; no attempt is made to infer a better expiry.
*/
package oauthx
