// Package deps reports whether the external binaries zebranoise shells out
// to (ffmpeg for encoding, ffprobe for verification) are present.
package deps
