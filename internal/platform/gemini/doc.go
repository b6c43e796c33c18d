// Package gemini implements the generation interfaces using Google's Gemini
// API: job-description keyword extraction and final resume composition.
package gemini
