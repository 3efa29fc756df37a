// Package history keeps an audit log of translation requests in SQLite.
//
// Each HTTP translation is recorded with its request ID, target language,
// how its leaves were resolved and how long it took. The log answers "what
// happened" questions; it is never consulted to answer a translation.
package history
