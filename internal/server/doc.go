// Package server provides the temporary localhost HTTP server used by the
// one-time credential setup flow.
//
// When the user runs the setup token command, a server starts on the
// configured host and port, [OAuthHandler] receives the authorization
// callback, validates the state parameter, exchanges the code, and hands the
// token back through a channel. The server shuts down as soon as one result
// arrives; only the first callback is processed.
//
// [BasicRouter] is deliberately small. The bot itself never serves HTTP, so
// this package only exists for the setup flow.
package server
