// Package assets publishes media from the music library into the website's
// public asset folders.
//
// Friends copies the ordered Top 8 image list under numeric names. Social
// copies each album's MP3s verbatim, copies cover art under
// <album>_cover.<ext>, and copies the profile image to its fixed name. Both
// runs are single-threaded and skip missing sources with a logged notice;
// any other filesystem failure aborts the run with a wrapped error. Every run
// returns a Report describing what was copied, planned, or missing.
package assets
