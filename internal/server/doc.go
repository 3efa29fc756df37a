// Package server exposes the tree translator over HTTP with gin.
//
// Routes:
//
//	GET  /version             build version and deployment environment
//	GET  /health              liveness and the configured provider
//	POST /translate           the translations.create[0] headline/content envelope
//	POST /translate/document  any JSON document
//	GET  /history             recent requests and totals, when a log is configured
//
// Errors are answered as {"detail": "..."}.
package server
