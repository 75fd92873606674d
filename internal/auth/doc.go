// Package auth provides authentication functionality for the application.
//
// Two authentication strategies share one contract (Strategy): Local
// authenticates an email/password pair against the users table with Argon2id
// password verification, and Google runs the OAuth2/OIDC code flow against
// Google's identity service and finds or creates the matching user account.
//
// Business rejections (unknown account, wrong password, external-only
// account, email already registered) are sentinel errors so handlers can
// branch on them; anything else is an infrastructure failure.
package auth
