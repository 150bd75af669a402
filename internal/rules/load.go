package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tannerhall/intentaudit/internal/intent"
)

// Error codes for rule loading.
const (
	ErrCodeNotFound    = "E001" // rules path does not exist
	ErrCodeRead        = "E002" // file could not be read
	ErrCodeParse       = "E003" // file content is not valid JSON/YAML
	ErrCodeUnsupported = "E004" // unrecognized file extension
	ErrCodeNoFiles     = "E005" // CUE directory contains no .cue files
	ErrCodeCUELoad     = "E006" // CUE instance failed to load
	ErrCodeCUEBuild    = "E007" // CUE value failed to build
	ErrCodeCUEDecode   = "E008" // ruleset struct failed to decode
)

// LoadError describes a failure to load a rule set from a source.
type LoadError struct {
	Code    string
	Message string
	Err     error // underlying cause, optional
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ruleFile is the on-disk shape shared by the JSON and YAML formats.
// Field absence is legal: the zero value loads as an empty rule set.
type ruleFile struct {
	ActionsOrder   []string            `json:"actions_order" yaml:"actions_order"`
	Rules          map[string][]string `json:"rules" yaml:"rules"`
	FallbackAction string              `json:"fallback_action" yaml:"fallback_action"`
}

// Load reads a rule set from path.
//
// A directory is loaded as a CUE rule pack. A file is loaded by extension:
// .json, .yaml or .yml. Anything else is an ErrCodeUnsupported LoadError.
func Load(path string) (intent.RuleSet, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("rules path not found: %s", path)}
	}
	if err != nil {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("accessing rules path %s", path), Err: err}
	}

	if info.IsDir() {
		return LoadCUE(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadFile(path, json.Unmarshal)
	case ".yaml", ".yml":
		return loadFile(path, yaml.Unmarshal)
	default:
		return intent.RuleSet{}, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported rules format %q (want .json, .yaml, .yml, or a CUE directory)", filepath.Ext(path)),
		}
	}
}

func loadFile(path string, unmarshal func([]byte, any) error) (intent.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading %s", path), Err: err}
	}

	var rf ruleFile
	if err := unmarshal(data, &rf); err != nil {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing %s", path), Err: err}
	}

	return fromRuleFile(rf), nil
}

// fromRuleFile converts the on-disk shape to the engine's RuleSet,
// applying load-time defaults: nil sections become empty, and an absent
// fallback_action resolves to the last entry of actions_order.
func fromRuleFile(rf ruleFile) intent.RuleSet {
	rs := intent.RuleSet{
		ActionsOrder:   make([]intent.ActionName, 0, len(rf.ActionsOrder)),
		Rules:          make(map[intent.ActionName][]intent.Pattern, len(rf.Rules)),
		FallbackAction: intent.ActionName(rf.FallbackAction),
	}

	for _, a := range rf.ActionsOrder {
		rs.ActionsOrder = append(rs.ActionsOrder, intent.ActionName(a))
	}
	for action, patterns := range rf.Rules {
		ps := make([]intent.Pattern, 0, len(patterns))
		for _, p := range patterns {
			ps = append(ps, intent.Pattern(p))
		}
		rs.Rules[intent.ActionName(action)] = ps
	}

	if rs.FallbackAction == "" && len(rs.ActionsOrder) > 0 {
		rs.FallbackAction = rs.ActionsOrder[len(rs.ActionsOrder)-1]
	}

	return rs
}
