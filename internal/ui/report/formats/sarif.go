package formats

import (
	"docscan/internal/shared/util"
	"docscan/internal/shared/version"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	ruleIDMissingDocstring = "DOCSCAN001"
	ruleIDParseError       = "DOCSCAN002"
)

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
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
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine int `json:"startLine,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document. Every pydocstyle code seen
// becomes one rule; missing docstrings and unparsable files use docscan's
// own rules. File URIs are relative to doc.ProjectRoot.
func GenerateSARIF(doc Document) ([]byte, error) {
	results := make([]sarifResult, 0)
	checkerRules := make(map[string]string)
	var missing, parseErrors bool

	for _, r := range doc.Results {
		uri := relativeURI(doc.ProjectRoot, r.Path)

		if r.Err != nil {
			parseErrors = true
			results = append(results, sarifResult{
				RuleID:    ruleIDParseError,
				Level:     "error",
				Message:   sarifMessage{Text: fmt.Sprintf("File could not be analyzed: %v", r.Err)},
				Locations: []sarifLocation{fileLocation(uri, 0)},
			})
			continue
		}

		for _, v := range r.Report.Violations {
			if checkerRules[v.Code] == "" {
				checkerRules[v.Code] = v.ShortDesc
			}
			results = append(results, sarifResult{
				RuleID:    v.Code,
				Level:     "warning",
				Message:   sarifMessage{Text: nonEmpty(v.Message, v.Code)},
				Locations: []sarifLocation{fileLocation(uri, v.Line)},
			})
		}

		for _, d := range r.Docs {
			missing = true
			results = append(results, sarifResult{
				RuleID:    ruleIDMissingDocstring,
				Level:     "note",
				Message:   sarifMessage{Text: fmt.Sprintf("%s %q has no docstring", capitalize(d.Kind), d.Name)},
				Locations: []sarifLocation{fileLocation(uri, d.Line)},
			})
		}
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "docscan",
						Version: version.Version,
						Rules:   buildSARIFRules(checkerRules, missing, parseErrors),
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

// buildSARIFRules returns only the rules referenced by results, checker codes
// in sorted order.
func buildSARIFRules(checkerRules map[string]string, missing, parseErrors bool) []sarifRule {
	rules := make([]sarifRule, 0, len(checkerRules)+2)
	if missing {
		rules = append(rules, sarifRule{
			ID:               ruleIDMissingDocstring,
			Name:             "MissingDocstring",
			ShortDescription: sarifMessage{Text: "A module, class or function has no docstring."},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "note"},
		})
	}
	if parseErrors {
		rules = append(rules, sarifRule{
			ID:               ruleIDParseError,
			Name:             "ParseError",
			ShortDescription: sarifMessage{Text: "The file could not be parsed as Python."},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "error"},
		})
	}
	for _, code := range util.SortedStringKeys(checkerRules) {
		rules = append(rules, sarifRule{
			ID:               code,
			Name:             "pydocstyle" + code,
			ShortDescription: sarifMessage{Text: nonEmpty(checkerRules[code], "pydocstyle "+code)},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
		})
	}
	return rules
}

func fileLocation(uri string, line int) sarifLocation {
	loc := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{
				URI:       uri,
				URIBaseID: "%SRCROOT%",
			},
		},
	}
	if line > 0 {
		loc.PhysicalLocation.Region = &sarifRegion{StartLine: line}
	}
	return loc
}

// relativeURI converts an absolute file path to a forward-slash relative URI
// anchored at projectRoot. If the path is already relative or projectRoot is
// empty, the original path (with forward slashes) is returned.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	return filepath.ToSlash(filePath)
}
