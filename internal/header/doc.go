// Package header resolves inconsistent human-entered column headers to
// stable lookup keys.
//
// Raw header strings in intake sheets vary cosmetically - trailing spaces,
// punctuation, emoji decoration, casing. Comparing raw strings is brittle;
// comparing normalized alphanumeric-only keys is stable across that
// variation. NormalizeKey defines the canonical form, BuildHeaderMap
// resolves a header row to column positions once per table, and
// QualifyTable decides whether a table is in scope for auditing at all.
package header
