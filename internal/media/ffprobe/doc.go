// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: video stream geometry, frame rate, and frame counts
//   - Format: container-level metadata (duration, size, bitrate)
//
// Inspect runs ffprobe; Options.CountFrames asks it to decode every frame so
// Stream.FrameCount is exact rather than read from the container header.
package ffprobe
