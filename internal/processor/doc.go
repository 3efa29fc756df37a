// Package processor contains the command-line workflows of jsonlingo. It
// reads JSON documents from files or stdin, runs them through the tree
// translator and writes the results, either one document at a time or for
// every document listed in a batch file.
package processor
