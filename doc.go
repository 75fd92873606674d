// Package main provides the entry point for the secrets application.
// It initializes and runs a web server using the Fiber framework that lets
// users register or sign in with Google, keep one personal secret, and view
// or replace it through a small web interface. The application uses gorm for
// data persistence and server-side sessions backed by a storage table.
package main
