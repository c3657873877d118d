// Package services orchestrates a sanitize run: it checks each root against
// the user partition, asks for approval where needed, runs the sanitizer and
// writes the per-root report.
package services
