// Package upload provides image upload storage for EditKit.
//
// Uploaded images back the src/srcset attributes the image feature
// converts: the handler stores the bytes through a Store (local disk or
// S3), probes the pixel dimensions, and returns the stored URL together
// with the detected width so clients can seed the composite srcset value.
//
// # Security
//
// The handler enforces the allowed content types against the MIME type
// detected server-side (http.DetectContentType); client-provided part
// headers are not trusted.
package upload
