package resolve

import (
	"complaint-intake-backend/internal/model"
	"complaint-intake-backend/internal/text"
)

// issueSynonyms is iterated in a fixed order; when a message mentions words
// from more than one category, the first-enumerated category wins.
var issueSynonyms = []struct {
	issueType model.IssueType
	words     []string
}{
	{model.IssueHardware, []string{
		"hardware", "mechanical", "motor", "spindle", "bearing", "belt", "gear", "physical",
	}},
	{model.IssueProcess, []string{
		"process", "workflow", "procedure", "software", "calibration", "operation", "operational",
	}},
	{model.IssueElectrical, []string{
		"electrical", "electric", "wiring", "power", "voltage", "circuit", "short", "spark",
	}},
}

// ClassifyIssueType maps free text onto the fixed issue-type enum by token
// intersection with per-category synonym sets. It is case-insensitive and
// deterministic. Returns ok=false when no token hits any category.
func ClassifyIssueType(message string) (model.IssueType, bool) {
	tokens := text.TokenSet(message)
	if len(tokens) == 0 {
		return 0, false
	}

	for _, cat := range issueSynonyms {
		for _, word := range cat.words {
			if _, ok := tokens[word]; ok {
				return cat.issueType, true
			}
		}
	}
	return 0, false
}
