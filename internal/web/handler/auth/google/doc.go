// Package google provides the handlers for the Google sign-in flow.
//
// GET /auth/google issues a CSRF state token and redirects to Google's
// consent screen. GET /auth/google/secrets handles the redirect back,
// verifies the state and the ID token, signs the matched (or newly created)
// account in and forwards to the secrets page. Any failure in the flow
// redirects to the login page.
package google
