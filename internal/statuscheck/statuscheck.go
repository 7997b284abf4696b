// Package statuscheck answers CRSC disclosure status lookups with canned data.
//
// Handle is a pure function of the request and the current instant: the
// method guard, then every validation rule, then dispatch on the first digit
// of the disclosure reference. Service adds tracing, metrics and logging
// around it for the transports.
package statuscheck

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	dErrors "crsc/pkg/domain-errors"
	"crsc/pkg/platform/httputil"
)

// MethodNotAllowedMessage is the body returned for anything but GET.
const MethodNotAllowedMessage = "Method not allowed"

// Check decides the answer for req. Failures are domain errors:
// CodeMethodNotAllowed, CodeValidation (wrapping ValidationErrors) or
// CodeUnrecognisedReference.
func Check(req Request, now time.Time) (StatusResult, error) {
	if req.Method != http.MethodGet {
		return StatusResult{}, dErrors.New(dErrors.CodeMethodNotAllowed, MethodNotAllowedMessage)
	}

	if errs := Validate(req, now); len(errs) > 0 {
		return StatusResult{}, &dErrors.Error{Code: dErrors.CodeValidation, Message: errs.Error(), Err: errs}
	}

	digit, _ := utf8.DecodeRuneInString(req.DisclosureRef)
	outcome := OutcomeForDigit(digit)
	switch outcome {
	case OutcomeNoMatchFound:
		return StatusResult{Outcome: outcome, Body: NotFoundXML}, nil
	case OutcomeBlankNoNewInfo, OutcomeNonBlankNoNewInfo, OutcomeNewInfo:
		return StatusResult{Outcome: outcome, Body: GenerateXML(outcome, req.Query.Get(ParamSurname), now)}, nil
	case OutcomeUnrecognised:
		return StatusResult{Outcome: outcome}, dErrors.New(dErrors.CodeUnrecognisedReference,
			fmt.Sprintf("Unrecognised `disclosureRef` first digit: %c", digit))
	}
	return StatusResult{}, dErrors.New(dErrors.CodeInternal, "unhandled outcome "+outcome.String())
}

// selfCheckRequest is a known-good lookup for the no-match reference.
var selfCheckRequest = Request{
	Method:        http.MethodGet,
	DisclosureRef: "100000000000",
	Query: url.Values{
		ParamDateOfBirth:                 {"01/01/1990"},
		ParamSurname:                     {"readiness"},
		ParamHasAgreedTermsAndConditions: {"true"},
		ParamOrganisationName:            {"readiness"},
		ParamEmployeeSurname:             {"readiness"},
		ParamEmployeeForename:            {"readiness"},
	},
}

// SelfCheck answers a known-good lookup as of now and reports an error
// unless it yields the canned no-match document. It backs the readiness probe.
func SelfCheck(now time.Time) error {
	result, err := Check(selfCheckRequest, now)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "status self check rejected: "+err.Error())
	}
	if result.Body != NotFoundXML {
		return dErrors.New(dErrors.CodeInternal, "status self check returned an unexpected document")
	}
	return nil
}

// Handle is the whole contract of the endpoint: request and instant in,
// status, content type and body out.
func Handle(req Request, now time.Time) Response {
	result, err := Check(req, now)
	if err != nil {
		return ErrorResponse(err)
	}
	return Response{
		Status:      http.StatusOK,
		ContentType: httputil.ContentTypeXML,
		Body:        result.Body,
	}
}

// ErrorResponse turns a Check error into its plain-text response.
func ErrorResponse(err error) Response {
	code := dErrors.CodeOf(err)
	body := err.Error()
	if code == dErrors.CodeInternal {
		body = http.StatusText(http.StatusInternalServerError)
	}
	return Response{
		Status:      httputil.DomainCodeToHTTPStatus(code),
		ContentType: httputil.ContentTypeText,
		Body:        body,
	}
}

// outcomeLabel names a Check result for metrics and logs.
func outcomeLabel(result StatusResult, err error) string {
	if err == nil {
		return result.Outcome.Label()
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation:
		return "validation_failed"
	case dErrors.CodeMethodNotAllowed:
		return "method_not_allowed"
	case dErrors.CodeUnrecognisedReference:
		return OutcomeUnrecognised.Label()
	default:
		return "internal_error"
	}
}

// validationErrors extracts the message list from a Check error, if any.
func validationErrors(err error) ValidationErrors {
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}
