// Package runner executes ffmpeg and ffprobe.
//
// The Runner owns overwrite protection and output atomicity: a Job's output is
// checked before any process starts, an advisory lock on "<output>.lock" keeps
// two vidio invocations off the same destination, ffmpeg writes to a hidden
// temp sibling, and the temp file is renamed over the destination only after
// every pass exits cleanly. Failed passes leave no partial output behind.
//
// Process execution sits behind the Executor interface so tests can swap in a
// RecordingExecutor and assert on the exact argument vectors.
package runner
