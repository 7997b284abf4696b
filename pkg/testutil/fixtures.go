package testutil

import (
	"net/url"
	"time"
)

// FixedNow is the instant tests stamp on requests. Its birth-year ceiling is
// 2008 and its print date is 2023-06-15.
var FixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// FixedClock always returns FixedNow.
func FixedClock() time.Time {
	return FixedNow
}

// ValidStatusQuery returns a fresh query that passes every field rule.
func ValidStatusQuery() url.Values {
	return url.Values{
		"dateOfBirth":                 {"01/02/1990"},
		"surname":                     {"smith"},
		"hasAgreedTermsAndConditions": {"true"},
		"organisationName":            {"acme"},
		"employeeSurname":             {"jones"},
		"employeeForename":            {"sam"},
	}
}
