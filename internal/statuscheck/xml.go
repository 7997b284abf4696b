package statuscheck

import (
	"fmt"
	"strings"
	"time"
)

// NotFoundXML is the fixed body for references starting with '1'.
const NotFoundXML = `<statusCheckResult>
    <statusCheckResultType>SUCCESS</statusCheckResultType>
    <status>NO_MATCH_FOUND</status>
</statusCheckResult>`

const resultTemplate = `<statusCheckResult>
    <statusCheckResultType>SUCCESS</statusCheckResultType>
    <status>%s</status>
    <forename>%s</forename>
    <surname>%s</surname>
    <printDate class="sql-date">%s</printDate>
</statusCheckResult>`

// StubForename is returned for every matched record.
const StubForename = "TAYLOR"

const printDateLayout = "2006-01-02"

// GenerateXML renders a matched record. The surname is upper-cased and
// interpolated as is; the print date is one calendar year before now, as a
// UTC date (29 February rolls forward to 1 March).
func GenerateXML(status Outcome, surname string, now time.Time) string {
	return fmt.Sprintf(resultTemplate, status, StubForename, strings.ToUpper(surname), PrintDate(now))
}

// PrintDate is now minus one calendar year, formatted YYYY-MM-DD.
func PrintDate(now time.Time) string {
	return now.AddDate(-1, 0, 0).UTC().Format(printDateLayout)
}
