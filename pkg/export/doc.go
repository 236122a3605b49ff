// Package export publishes rendered pages to S3.
//
// An S3Sink collects everything written to it and uploads the result as
// a single object when Commit is called. An Exporter wires the sink to
// the page renderer so a whole site can be written out ahead of time
// and served from a bucket or CDN.
package export
