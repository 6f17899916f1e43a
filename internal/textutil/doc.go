// Package textutil provides filename and token sanitization for production
// directory segments and per-cue artifact names.
package textutil
