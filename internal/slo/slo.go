// Package slo reads score thresholds and SLI objectives out of the SLO file attached to an evaluation.
package slo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
	"gopkg.in/yaml.v3"
)

// File is the subset of an SLO file that heatgate understands.
type File struct {
	SpecVersion string      `yaml:"spec_version"`
	Objectives  []Objective `yaml:"objectives"`
	TotalScore  TotalScore  `yaml:"total_score"`
}

// Objective names an SLI and whether it is a key SLI.
type Objective struct {
	SLI         string `yaml:"sli"`
	DisplayName string `yaml:"displayName"`
	KeySLI      bool   `yaml:"key_sli"`
}

// TotalScore holds the evaluation score thresholds, e.g. "90%".
type TotalScore struct {
	Pass    string `yaml:"pass"`
	Warning string `yaml:"warning"`
}

// Thresholds are the numeric score thresholds.
type Thresholds struct {
	Pass float64
	Warn float64
}

// Decode returns the raw YAML of content, which may be base64 encoded.
func Decode(content string) ([]byte, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, errors.New("empty SLO content")
	}
	if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		return decoded, nil
	}
	return []byte(content), nil
}

// Parse decodes and unmarshals an SLO file.
func Parse(content string) (*File, error) {
	data, err := Decode(content)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing SLO file: %w", err)
	}
	return &f, nil
}

// ParseThresholds extracts the total score thresholds.
func ParseThresholds(content string) (Thresholds, error) {
	f, err := Parse(content)
	if err != nil {
		return Thresholds{}, err
	}
	return f.Thresholds()
}

// Thresholds converts the total score percentages.
func (f *File) Thresholds() (Thresholds, error) {
	pass, err := parsePercent(f.TotalScore.Pass)
	if err != nil {
		return Thresholds{}, fmt.Errorf("invalid total_score.pass: %w", err)
	}
	warn, err := parsePercent(f.TotalScore.Warning)
	if err != nil {
		return Thresholds{}, fmt.Errorf("invalid total_score.warning: %w", err)
	}
	return Thresholds{Pass: pass, Warn: warn}, nil
}

// parsePercent accepts "90%", "90" or "90.5".
func parsePercent(raw string) (float64, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	if s == "" {
		return 0, errors.New("missing value")
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Apply fills in what an evaluation leaves out from its SLO file: the score
// thresholds when unset, and per indicator the objective's display name and
// key SLI flag. Records without content are left alone; parse errors are
// logged and leave the record unchanged.
func Apply(ev *schema.EvaluationRecord) {
	if ev.SLOFileContent == "" {
		return
	}
	f, err := Parse(ev.SLOFileContent)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Cannot read SLO file of evaluation %s", ev.ID), err)
		return
	}
	applyObjectives(ev, f.Objectives)

	if ev.HasThresholds() {
		return
	}
	th, err := f.Thresholds()
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Cannot read SLO thresholds of evaluation %s", ev.ID), err)
		return
	}
	ev.ScorePassThreshold = &th.Pass
	ev.ScoreWarnThreshold = &th.Warn
}

// applyObjectives matches objectives to indicators by metric name.
// Values already present on an indicator win.
func applyObjectives(ev *schema.EvaluationRecord, objectives []Objective) {
	if len(objectives) == 0 {
		return
	}
	bySLI := make(map[string]Objective, len(objectives))
	for _, o := range objectives {
		bySLI[o.SLI] = o
	}
	for i := range ev.IndicatorResults {
		ind := &ev.IndicatorResults[i]
		o, ok := bySLI[ind.Metric]
		if !ok {
			continue
		}
		if ind.DisplayName == "" {
			ind.DisplayName = o.DisplayName
		}
		ind.KeySLI = ind.KeySLI || o.KeySLI
	}
}
