// Package models defines the core domain models for splitcosts.
//
// # Models
//
//   - Sheet: The parsed expense sheet (header row plus expense rows)
//   - Row: One expense event, as raw cells aligned to the header
//   - Transfer: A payment that settles part of the group's balances
//
// Participants are identified by the name in their header column. Names are
// case-sensitive and must be unique within a sheet.
//
// # Cell Syntax
//
// A cell under a participant's column holds one of:
//  1. A plain decimal ("12.50"): the participant contributed this amount and shares the row
//  2. Nothing: zero contribution, the participant still shares the row
//  3. AbsentMarker ("-"): the participant is not part of this row at all
//  4. A parenthesized decimal ("(8)"): contributed, but excluded from the shared pool
//
// Header cells left blank are label columns (dates, descriptions) and are
// never interpreted.
package models
