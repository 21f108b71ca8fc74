// Package analysis measures generated noise: the radially averaged spatial
// power spectrum of a raw slice with its log-log slope, and per-frame
// luminance statistics used by the preview trace.
package analysis
