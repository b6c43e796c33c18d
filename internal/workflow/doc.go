// Package workflow implements the fan-out/fan-in orchestrator that drives one
// resume generation run: independent producer tasks executed at most once each,
// a join barrier, and a single consumer task composed from the producers'
// recorded outcomes, all bounded by a run-level deadline.
package workflow
