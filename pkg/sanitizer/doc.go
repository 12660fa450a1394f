// Package sanitizer normalizes untrusted user input before validation and
// storage. Email normalization keeps lookups consistent: the same mailbox
// typed with different casing or stray whitespace must resolve to the same
// account row.
package sanitizer
