// Package subtitles parses and writes subtitle tracks.
//
// A Track is the uniform in-memory model shared by every format: an ordered
// list of cues carrying opaque start/end timestamps, the immutable source
// text, and an optional translation. Parse and Serialize pick the SRT or the
// restricted ASS codec from the file extension.
//
// SRT files are validated block by block and decoded with go-astisub. ASS
// support is limited to Dialogue lines in the [Events] section; styles and
// override codes are not modeled. Input files may carry a UTF-8 or UTF-16
// byte order mark and CRLF line endings.
//
// The package performs no logging and holds no state.
package subtitles
