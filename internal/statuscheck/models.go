package statuscheck

import (
	"net/url"
)

// Query parameter names accepted by the status endpoint.
const (
	ParamDateOfBirth                 = "dateOfBirth"
	ParamSurname                     = "surname"
	ParamHasAgreedTermsAndConditions = "hasAgreedTermsAndConditions"
	ParamOrganisationName            = "organisationName"
	ParamEmployeeSurname             = "employeeSurname"
	ParamEmployeeForename            = "employeeForename"
)

// PathParamDisclosureRef is the route parameter carrying the reference.
const PathParamDisclosureRef = "disclosureRef"

// Request is everything the responder looks at. A query parameter counts as
// present when its key appears at all, even with an empty value; when it
// repeats, the first value wins.
type Request struct {
	Method        string
	DisclosureRef string
	Query         url.Values
}

// Response is what a transport writes back verbatim.
type Response struct {
	Status      int
	ContentType string
	Body        string
}

// StatusResult is a successful lookup: the outcome and its rendered XML.
type StatusResult struct {
	Outcome Outcome
	Body    string
}
