// Package file stores opaque byte blobs and returns public URLs for them.
// The auth service uses it for profile images only: upload bytes, get back a
// URL to persist on the user record. S3 (or any S3-compatible endpoint)
// backs production; a local-directory backend serves development and tests.
package file
