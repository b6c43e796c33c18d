// Package service implements the application's use cases, wiring the data
// collection integrations and the resume composer into the workflow
// orchestrator.
package service
