package validate

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// OmissionRules decides which rows are left out of cost-center validation. A row is
// omitted when its activity text contains one of Keywords or its activity code starts
// with one of CodePrefixes.
type OmissionRules struct {
	Keywords     []string `yaml:"keywords" mapstructure:"keywords"`
	CodePrefixes []string `yaml:"code_prefixes" mapstructure:"code_prefixes"`
}

// DefaultOmissionRules returns the field-operations vocabulary: harvest and hauling
// work is booked against whatever CECO the crew happens to be on.
func DefaultOmissionRules() OmissionRules {
	return OmissionRules{
		Keywords: []string{
			"cosecha",
			"lavado de jarras",
			"acopio",
			"estibador",
			"estibadores",
		},
		CodePrefixes: []string{
			"MANTCAM-007-",
			"OPER-014-",
			"PODA-020-",
			"COSEC-008-",
			"FITO-016-",
			"FERT-003-",
			"OSM-015-",
		},
	}
}

// Normalized returns a copy with keywords lower-cased and whitespace-collapsed and
// prefixes upper-cased without spaces. Blank entries are dropped.
func (r OmissionRules) Normalized() OmissionRules {
	out := OmissionRules{
		Keywords:     make([]string, 0, len(r.Keywords)),
		CodePrefixes: make([]string, 0, len(r.CodePrefixes)),
	}
	for _, k := range r.Keywords {
		if k = collapseLower(k); k != "" {
			out.Keywords = append(out.Keywords, k)
		}
	}
	for _, p := range r.CodePrefixes {
		if p = camKey(NormalizeCode(p)); p != "" {
			out.CodePrefixes = append(out.CodePrefixes, p)
		}
	}
	return out
}

// IsOmitted reports whether a row with this activity text and extracted code is
// excluded from cost-center validation. Rules are expected to be Normalized.
func (r OmissionRules) IsOmitted(activity, code string) bool {
	return r.omittedByActivity(activity) || r.omittedByCode(code)
}

func (r OmissionRules) omittedByActivity(activity string) bool {
	text := collapseLower(activity)
	if text == "" {
		return false
	}
	for _, k := range r.Keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func (r OmissionRules) omittedByCode(code string) bool {
	if code == "" {
		return false
	}
	code = camKey(NormalizeCode(code))
	for _, p := range r.CodePrefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

// camKey folds the hyphenated CAM form onto the joined one, so "MANT-CAM-007-" and
// "MANTCAM-007-" compare equal.
func camKey(code string) string {
	return strings.Replace(code, "-CAM-", "CAM-", 1)
}

// LoadOmissionRules reads rules from a YAML file:
//
//	keywords: [cosecha, acopio]
//	code_prefixes: [PODA-020-]
func LoadOmissionRules(path string) (OmissionRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return OmissionRules{}, eris.Wrap(err, "validate: read omission rules")
	}
	var r OmissionRules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return OmissionRules{}, eris.Wrap(err, "validate: parse omission rules")
	}
	if len(r.Keywords) == 0 && len(r.CodePrefixes) == 0 {
		return OmissionRules{}, eris.Errorf("validate: omission rules file %s defines no keywords or prefixes", path)
	}
	return r.Normalized(), nil
}

func collapseLower(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
