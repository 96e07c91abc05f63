package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"stcheck/internal/diag"
	"stcheck/internal/source"
)

// SARIF v2.1.0 output, the minimal subset CI annotation tooling consumes.

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

// SARIF writes diagnostics as a single-run SARIF 2.1.0 log.
func SARIF(w io.Writer, fileSet *source.FileSet, diags []diag.Diagnostic) error {
	rulesSeen := make(map[string]string)
	results := make([]sarifResult, 0, len(diags))

	for i := range diags {
		d := &diags[i]
		file := fileSet.Get(d.Primary.File)
		start, end := fileSet.Resolve(d.Primary)

		id := d.Code.ID()
		rulesSeen[id] = d.Code.String()

		results = append(results, sarifResult{
			RuleID:  id,
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: file.Path},
					Region: sarifRegion{
						StartLine: start.Line, StartColumn: start.Col,
						EndLine: end.Line, EndColumn: end.Col,
					},
				},
			}},
		})
	}

	ruleIDs := make([]string, 0, len(rulesSeen))
	for id := range rulesSeen {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)
	sarifRules := make([]sarifRule, 0, len(ruleIDs))
	for _, id := range ruleIDs {
		sarifRules = append(sarifRules, sarifRule{ID: id, Name: rulesSeen[id]})
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:  "stcheck",
				Rules: sarifRules,
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
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
