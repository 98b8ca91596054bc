// Package task implements background task processing: the Task
// abstraction, the worker pool that runs tasks, and the turn pipeline
// task that produces poetic responses.
package task
