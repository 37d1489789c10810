// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"

	"dario.cat/mergo"
	"github.com/google/uuid"
)

// detectorFlags maps boolean option flags to the detector-options entry
// they synthesize. Adding a conditional flag here is the only change
// needed; the validation stage never looks at these keys.
var detectorFlags = []struct {
	flag     string
	detector string
	option   string
}{
	{flag: KeyBootPprof, detector: "pprof", option: "boot"},
}

// Merge layers overrides on top of defaults and returns the single
// merged [Options] map every later read goes through. Neither input map
// is mutated and no validation happens here.
//
// Two computed keys are injected into the result before it is returned:
//   - KeyAgentID: a unique instance identifier, generated only when the
//     merge did not already carry one. Collisions are a tolerated
//     low-probability risk.
//   - KeyDetectorOptions: a JSON blob assembled from the detectorFlags
//     table; the key is omitted entirely when no flag is set.
func Merge(defaults, overrides Options) (Options, error) {
	merged := make(Options, len(defaults)+len(overrides))
	if err := mergo.Merge(&merged, defaults); err != nil {
		return nil, fmt.Errorf("error merging default options: %w", err)
	}
	if err := mergo.Merge(&merged, overrides, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging override options: %w", err)
	}

	if !merged.Has(KeyAgentID) {
		merged[KeyAgentID] = uuid.NewString() + "-go"
	}
	if err := injectDetectorOptions(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

func injectDetectorOptions(merged Options) error {
	detectorOpts := make(map[string]map[string]bool)
	for _, f := range detectorFlags {
		if merged.GetBool(f.flag) {
			detectorOpts[f.detector] = map[string]bool{f.option: true}
		}
	}
	if len(detectorOpts) == 0 {
		return nil
	}

	blob, err := json.Marshal(detectorOpts)
	if err != nil {
		return fmt.Errorf("error encoding detector options: %w", err)
	}
	merged[KeyDetectorOptions] = string(blob)

	return nil
}
