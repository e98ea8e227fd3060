// Package provider loads and encodes provider lists. A provider record is
// an opaque JSON object carried byte-for-byte from input to output; only
// its url field is interpreted.
package provider
