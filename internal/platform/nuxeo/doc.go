// Package nuxeo is the client layer for the Nuxeo document store's
// automation API. It covers the three operations this system needs:
// publishing detection results onto a document, listing the documents of a
// collection to seed the job queue, and sending the end-of-run completion
// mail. All calls share one HTTP client with a fixed per-call timeout.
package nuxeo
