// Package batch reads batch files listing JSON documents to translate.
package batch
