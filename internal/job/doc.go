// Package job provides in-memory background processing for resume generation
// requests: a bounded queue, a worker pool, and a store tracking each job's
// lifecycle. Nothing is persisted; jobs do not survive a process restart.
package job
