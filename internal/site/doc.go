// Package site builds a static site from a content tree of markdown files.
//
// A build runs four phases:
//  1. the public directory is deleted
//  2. the static directory is copied into public
//  3. every markdown page under content is converted to an HTML file at the
//     same relative path, on a bounded worker pool
//  4. optionally, generated pages are audited for broken local links
//
// Per-page failures never stop the batch. They are recorded in the Report
// and combined into the returned error with go.uber.org/multierr.
package site
