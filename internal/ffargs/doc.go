// Package ffargs turns validated command options into ffmpeg argument
// vectors.
//
// Every builder runs its validation pass first and returns a failures marker
// naming the offending flag, so option errors never reach ffmpeg. Builders are
// pure: they take the probed source geometry as input and never touch the
// filesystem or start processes. The returned slices exclude the binary name
// and always end with "-y <output>"; overwrite protection is the runner's job.
package ffargs
