package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/tannerhall/intentaudit/internal/intent"
)

// LoadCUE loads a rule set from a directory of CUE files.
//
// The files must evaluate to a struct with a top-level "ruleset" field:
//
//	ruleset: {
//		actions_order: ["Create Record", "Search/Query"]
//		rules: "Create Record": ["new", "add"]
//		fallback_action: "Search/Query"
//	}
//
// CUE's unification means the pack can be split across files and carry
// schema constraints; all of that is resolved before decoding. Load-time
// defaults are the same as for JSON/YAML sources.
func LoadCUE(dir string) (intent.RuleSet, error) {
	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("scanning %s", dir), Err: err}
	}
	if len(cueFiles) == 0 {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeCUELoad, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeCUELoad, Message: "loading CUE files", Err: inst.Err}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeCUEBuild, Message: "building CUE value", Err: err}
	}

	rulesetVal := value.LookupPath(cue.ParsePath("ruleset"))
	if !rulesetVal.Exists() {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeCUEDecode, Message: `no top-level "ruleset" struct found`}
	}

	var rf ruleFile
	if err := rulesetVal.Decode(&rf); err != nil {
		return intent.RuleSet{}, &LoadError{Code: ErrCodeCUEDecode, Message: "decoding ruleset", Err: err}
	}

	return fromRuleFile(rf), nil
}

// findCUEFiles returns all non-hidden .cue files directly in dir.
func findCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if filepath.Ext(entry.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
