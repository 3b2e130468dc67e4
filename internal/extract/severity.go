package extract

import (
	"regexp"

	"github.com/se-builders/crm-sync/internal/model"
)

// severityMarkers is checked in descending order of urgency so that an
// analysis mentioning both CRITICAL and MINOR hazards classifies as CRITICAL.
var severityMarkers = []struct {
	severity model.Severity
	re       *regexp.Regexp
}{
	{model.SeverityCritical, regexp.MustCompile(`(?i)\bcritical\b`)},
	{model.SeverityModerate, regexp.MustCompile(`(?i)\bmoderate\b`)},
	{model.SeverityMinor, regexp.MustCompile(`(?i)\bminor\b`)},
}

// Severity classifies a hazard analysis by scanning for severity markers.
// ok is false when the text carries no recognizable marker; batch callers
// skip such entries rather than defaulting them.
func Severity(text string) (sev model.Severity, ok bool) {
	for _, m := range severityMarkers {
		if m.re.MatchString(text) {
			return m.severity, true
		}
	}
	return "", false
}
