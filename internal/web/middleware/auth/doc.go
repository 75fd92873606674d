// Package auth provides the session middleware for the web application.
//
// New resolves the session cookie to a user account on every request and
// stores it in fiber.Locals, leaving anonymous requests untouched so public
// pages keep working. RequireAuthenticated sits on protected routes and
// redirects anonymous requests to the login page.
//
// Usage:
//
//	app.Use(authmiddleware.New(db))
//	app.Get("/secrets", authmiddleware.RequireAuthenticated, ...)
package auth
