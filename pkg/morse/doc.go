// Package morse transliterates between plain text and raw Morse strings.
package morse

// A raw Morse string is made of '.' and '-' symbols. A single space ends a
// token, two consecutive spaces end a word. Payloads exchanged over the radio
// use exactly this form with no framing.
