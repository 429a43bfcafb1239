// Package services defines the shared error taxonomy and context carriers
// used across flipbook components.
//
// Every user-visible failure is tagged with one of the exported sentinel
// errors so callers can classify results with errors.Is without parsing
// message text. Context helpers annotate operations with the project name,
// operation label, and correlation identifier that the logging package
// turns into structured fields.
package services
