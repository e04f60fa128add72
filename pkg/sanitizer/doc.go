// Package sanitizer coerces loosely typed listing values into display-safe
// Go values.
//
// All functions are total: malformed input yields a zero value and a false
// flag rather than an error, and applying a normalizer twice gives the same
// result. Handled input includes:
//   - Amounts: numbers or strings such as "KES 4,500" or "$1,200.50"
//   - Coordinates: numbers or numeric strings
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Search terms: lowercased, whitespace-collapsed
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
