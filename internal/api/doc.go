// Package api contains the HTTP handlers and request/response models for the
// resume generation service.
package api
