// Package sanitizer normalizes user-supplied text before validation and
// storage.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. Invalid input is passed through or emptied rather than
// reported, leaving rejection to the validators.
//
// Normalization includes:
//   - Free text: collapse internal whitespace, trim the ends
//   - Rooms: map any casing or dash variant onto the canonical room name
//   - Contacts: phone numbers become E.164, anything else is kept as text
//   - Clock times: "9:5" style input is zero padded, seconds are dropped
package sanitizer
