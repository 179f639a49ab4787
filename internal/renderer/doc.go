// Package renderer turns merged multi-theme tokens into output.
//
// HTML output carries every variant at once: the default variant as plain
// CSS declarations and the others as custom properties that a stylesheet
// can switch on. ANSI output and the terminal preview show one variant.
// The encoders write the merged token stream as data.
package renderer
