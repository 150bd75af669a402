package header

import (
	"fmt"
	"strings"
)

// Config is the caller-supplied qualification configuration. It is an
// explicit value so the same normalizer can run against different
// configurations concurrently - there is no package-level state.
//
// TriggerKey and ActionKey must already be normalized (NormalizeKey form).
// RecommendedKey and OverrideKey are optional; empty means the column is
// not used.
type Config struct {
	// SkipTables lists table names that are never audited, by exact name.
	SkipTables []string

	// LegacyMarker excludes any table whose name contains it as a
	// substring. Empty disables the check.
	LegacyMarker string

	// Required column keys.
	TriggerKey string
	ActionKey  string

	// Optional column keys.
	RecommendedKey string
	OverrideKey    string
}

// Check is the structured qualification verdict for one table.
// Reason is set iff Valid is false. Columns carries the HeaderMap built
// during qualification so accepted tables resolve columns without a
// second pass; it is populated for header-based rejections too, and nil
// for name-based ones.
type Check struct {
	Valid   bool      `json:"valid"`
	Reason  string    `json:"reason,omitempty"`
	Columns HeaderMap `json:"-"`
}

// QualifyTable decides whether a table is in scope for auditing.
//
// Rejection order: skip list first, then legacy marker, then header
// requirements. Name-based rejections are independent of header content.
// A header-based rejection reports the keys actually found, for
// diagnostics.
func QualifyTable(name string, headerRow []string, cfg Config) Check {
	for _, skip := range cfg.SkipTables {
		if name == skip {
			return Check{Reason: "in skip list"}
		}
	}

	if cfg.LegacyMarker != "" && strings.Contains(name, cfg.LegacyMarker) {
		return Check{Reason: "marked legacy"}
	}

	m := BuildHeaderMap(headerRow)
	_, hasTrigger := m[cfg.TriggerKey]
	_, hasAction := m[cfg.ActionKey]
	if !hasTrigger || !hasAction {
		return Check{
			Reason: fmt.Sprintf("missing required columns %q and/or %q; found: %s",
				cfg.TriggerKey, cfg.ActionKey, strings.Join(m.Keys(), ", ")),
			Columns: m,
		}
	}

	return Check{Valid: true, Columns: m}
}
