// Package models provides functionality for listing available OpenAI
// models. It shows which chat models can serve as translation models
// with the configured API key.
package models
