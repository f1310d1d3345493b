// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decision

import (
	"bytes"
	"text/template"
)

// promptTmpl asks the model to judge one filename against the capitalisation
// rule and answer in the two-line format Parse understands.
var promptTmpl = template.Must(template.New("rename").Parse(`You are an expert file name formatter. Your task is to analyze a filename and correct it based on a specific rule.

THE RULE:
A filename is correctly formatted if every distinct word starts with a capital letter. This rule applies even when words are not separated by spaces. Underscores, hyphens, and existing capitalization should be respected and preserved where appropriate.

EXAMPLES of poorly formatted names and their corrections:
- "Therighteousmindwhygoodpeoplearedividedbypoliticsandreligion" -> "TheRighteousMindWhyGoodPeopleAreDividedByPoliticsAndReligion"
- "the_basics_of_go" -> "The_Basics_Of_Go"

EXAMPLES of correctly formatted names (DO NOT CHANGE THESE):
- "PersonalityEmotionalandSelf-AssessedIntelligenceandRightWingAuthoritarianism"
- "HowtheDarkTriadtraitspredictrelationshipchoices"
- "TheLuciferEffectUnderstandingHowGoodPeopleTurnEvil"
- "SNAKESINSUITSWhenPsychopathsGotoWork"

YOUR TASK:
Analyze the filename provided below. First, decide if it needs to be reformatted. Then, provide the corrected name only if it needs changing.

Respond in the following strict format, with no other text or explanation:
Decision: [YES or NO]
Corrected Name: [The new name if Decision is YES, otherwise the original name]

---
Filename to analyze: "{{.Title}}"
`))

// Prompt renders the rename prompt for title, the filename without its
// extension.
func Prompt(title string) (string, error) {
	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, struct{ Title string }{Title: title}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
