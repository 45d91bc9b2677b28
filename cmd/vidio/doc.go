// Command vidio wraps ffmpeg and ffprobe behind task-oriented verbs.
//
// Each verb (trim, resize, crop, concat, grid, to-gif, info, list) is a
// registry entry that validates its flags, builds an argument vector with
// internal/ffargs, and hands it to internal/runner, which guards the output
// path and publishes the result atomically. info and list read metadata
// through internal/media/ffprobe instead.
package main
