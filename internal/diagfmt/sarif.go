package diagfmt

import (
	"encoding/json"
	"io"
	"slices"

	"cs2ts/internal/diag"
	"cs2ts/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription *sarifText   `json:"shortDescription,omitempty"`
	DefaultConfig    *sarifConfig `json:"defaultConfiguration,omitempty"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string            `json:"ruleId"`
	Level            string            `json:"level"`
	Message          sarifText         `json:"message"`
	Locations        []sarifLocation   `json:"locations,omitempty"`
	RelatedLocations []sarifRelatedLoc `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifRelatedLoc struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
	Message          sarifText     `json:"message"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// Sarif writes diags as a SARIF 2.1.0 log with a single run. Hidden
// diagnostics are left out.
func Sarif(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
		}},
		Results: make([]sarifResult, 0, len(diags)),
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: !diag.HasErrors(diags)}}
	}

	rules := make(map[string]sarifRule)
	for _, d := range visible(diags, false, 0) {
		if _, ok := rules[d.ID]; !ok {
			r := sarifRule{ID: d.ID, DefaultConfig: &sarifConfig{Level: sarifLevel(d.DefaultSeverity)}}
			if d.Code != diag.UnknownCode {
				r.ShortDescription = &sarifText{Text: d.Code.Title()}
			}
			rules[d.ID] = r
		}
		res := sarifResult{RuleID: d.ID, Level: sarifLevel(d.Severity), Message: sarifText{Text: d.Message}}
		if d.Location != nil {
			res.Locations = []sarifLocation{{PhysicalLocation: sarifPhysicalOf(d.Location, fs)}}
		}
		for _, n := range d.Notes {
			if n.Location == nil {
				continue
			}
			res.RelatedLocations = append(res.RelatedLocations, sarifRelatedLoc{
				PhysicalLocation: sarifPhysicalOf(n.Location, fs),
				Message:          sarifText{Text: n.Msg},
			})
		}
		run.Results = append(run.Results, res)
	}
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rules[id])
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}

func sarifPhysicalOf(loc *diag.Location, fs *source.FileSet) sarifPhysical {
	lj := locationJSON(loc, fs, JSONOpts{IncludePositions: true})
	p := sarifPhysical{ArtifactLocation: sarifArtifact{URI: lj.File}}
	if lj.StartLine > 0 {
		p.Region = &sarifRegion{StartLine: lj.StartLine, StartColumn: lj.StartCol, EndLine: lj.EndLine, EndColumn: lj.EndCol}
	}
	return p
}
