// Package exiftime restores capture timestamps on WhatsApp images.
//
// WhatsApp strips EXIF data from received images but keeps the receive time
// in the file name (`WhatsApp Image 2021-03-04 at 5.06.07 PM (1).jpeg`). The
// Patcher scans a directory for such files, decodes whatever EXIF block they
// still carry, and through exiftool writes the parsed time to
// EXIF:DateTimeOriginal together with a WhatsApp make/model marker. Files that already carry a capture time or a foreign camera tag are
// left alone.
package exiftime
