// Package generation defines the boundary between the application core and
// external AI/LLM services: the interfaces for extracting job-description
// keywords and composing the final resume document, plus the errors those
// integrations report.
package generation
