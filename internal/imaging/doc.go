// Package imaging provides the editor's image collaborators: reading source
// files, decoding and encoding snapshots, and the visible drawing surface.
//
// # Codec
//
// Codec decodes PNG, JPEG and GIF data into bitmap snapshots on a separate
// goroutine and reports the outcome through a future.Signal. Encoding goes
// the other way, producing a PNG data URL ("data:image/png;base64,...").
// Because PNG is lossless, decoding an encoded snapshot yields the same
// pixels, which is what the editor relies on when it redraws history
// entries.
//
// # Surface
//
// Surface is a fixed-size RGBA canvas. Draw scales an image to fit while
// keeping its aspect ratio and centers it; Clear fills the canvas with the
// theme background. Coordinates follow the standard image convention:
// (0,0) is the top-left corner, X increases rightward, Y downward.
//
// # Thread Safety
//
// Codec is safe for concurrent use. Surface is not; the editor session
// serializes every call to it.
package imaging
