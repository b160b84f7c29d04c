// Command subtext extracts hardcoded subtitles from video into editable,
// translatable subtitle tracks.
package main
