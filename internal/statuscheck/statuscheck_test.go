package statuscheck

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "crsc/pkg/domain-errors"
	"crsc/pkg/testutil"
)

var (
	fixedNow   = testutil.FixedNow
	validQuery = testutil.ValidStatusQuery
)

func getRequest(ref string, query url.Values) Request {
	return Request{Method: http.MethodGet, DisclosureRef: ref, Query: query}
}

func errorList(msgs ...string) string {
	return "Errors: \n- " + strings.Join(msgs, "\n- ")
}

func TestHandle_NonGetMethodsAreRejected(t *testing.T) {
	methods := []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions}
	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			resp := Handle(Request{Method: method, DisclosureRef: "x"}, fixedNow)

			assert.Equal(t, http.StatusMethodNotAllowed, resp.Status)
			assert.Equal(t, "text/plain", resp.ContentType)
			assert.Equal(t, "Method not allowed", resp.Body)
		})
	}

	t.Run("valid request still rejected", func(t *testing.T) {
		resp := Handle(Request{Method: http.MethodPost, DisclosureRef: "200000000000", Query: validQuery()}, fixedNow)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.Status)
	})
}

func TestHandle_MatchedOutcomes(t *testing.T) {
	tests := []struct {
		ref    string
		status string
	}{
		{"200000000000", "BLANK_NO_NEW_INFO"},
		{"300000000000", "NON_BLANK_NO_NEW_INFO"},
		{"499999999999", "NEW_INFO"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			resp := Handle(getRequest(tt.ref, validQuery()), fixedNow)

			require.Equal(t, http.StatusOK, resp.Status)
			assert.Equal(t, "application/xml", resp.ContentType)
			assert.Equal(t, `<statusCheckResult>
    <statusCheckResultType>SUCCESS</statusCheckResultType>
    <status>`+tt.status+`</status>
    <forename>TAYLOR</forename>
    <surname>SMITH</surname>
    <printDate class="sql-date">2023-06-15</printDate>
</statusCheckResult>`, resp.Body)
		})
	}
}

func TestHandle_NoMatchFound(t *testing.T) {
	resp := Handle(getRequest("100000000000", validQuery()), fixedNow)

	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "application/xml", resp.ContentType)
	assert.Equal(t, NotFoundXML, resp.Body)
	assert.NotContains(t, resp.Body, "<forename>")
	assert.NotContains(t, resp.Body, "<surname>")
}

func TestHandle_UnrecognisedFirstDigit(t *testing.T) {
	for _, ref := range []string{"999999999999", "000000000000", "500000000000"} {
		t.Run(ref, func(t *testing.T) {
			resp := Handle(getRequest(ref, validQuery()), fixedNow)

			assert.Equal(t, http.StatusBadRequest, resp.Status)
			assert.Equal(t, "text/plain", resp.ContentType)
			assert.Equal(t, "Unrecognised `disclosureRef` first digit: "+ref[:1], resp.Body)
		})
	}
}

func TestHandle_ValidationRunsBeforeDispatch(t *testing.T) {
	resp := Handle(getRequest("900000000000", url.Values{}), fixedNow)

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.True(t, strings.HasPrefix(resp.Body, "Errors: \n- "))
	assert.NotContains(t, resp.Body, "Unrecognised")
}

func TestHandle_AllMissingFieldsAccumulate(t *testing.T) {
	resp := Handle(getRequest("200000000000", url.Values{}), fixedNow)

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "text/plain", resp.ContentType)
	assert.Equal(t, errorList(
		"`dateOfBirth` is missing but is required.",
		"`surname` is missing but is required.",
		"`hasAgreedTermsAndConditions` is missing but is required.",
		"`organisationName` is missing but is required.",
		"`employeeSurname` is missing but is required.",
		"`employeeForename` is missing but is required.",
	), resp.Body)
}

func TestHandle_EachMissingFieldIsReported(t *testing.T) {
	for param := range validQuery() {
		t.Run(param, func(t *testing.T) {
			query := validQuery()
			query.Del(param)

			resp := Handle(getRequest("200000000000", query), fixedNow)

			assert.Equal(t, http.StatusBadRequest, resp.Status)
			assert.Equal(t, errorList("`"+param+"` is missing but is required."), resp.Body)
		})
	}
}

func TestHandle_EmptyValueCountsAsPresent(t *testing.T) {
	query := validQuery()
	query.Set(ParamSurname, "")
	query.Set(ParamOrganisationName, "")

	resp := Handle(getRequest("200000000000", query), fixedNow)

	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, "<surname></surname>")
}

func TestHandle_DisclosureRefErrorsFireTogether(t *testing.T) {
	resp := Handle(getRequest("12ab", validQuery()), fixedNow)

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, errorList(
		"`disclosureRef` must be a 12-digit string, but length was 4.",
		"`disclosureRef` must contain only digits, but actual string was \"12ab\".",
	), resp.Body)
}

func TestHandle_SurnameInsertedUnescaped(t *testing.T) {
	query := validQuery()
	query.Set(ParamSurname, "o'brien & <co>")

	resp := Handle(getRequest("400000000000", query), fixedNow)

	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, "<surname>O'BRIEN & <CO></surname>")
}

func TestHandle_Idempotent(t *testing.T) {
	req := getRequest("300000000000", validQuery())

	assert.Equal(t, Handle(req, fixedNow), Handle(req, fixedNow))
}

func TestCheck_ErrorCodes(t *testing.T) {
	t.Run("method", func(t *testing.T) {
		_, err := Check(Request{Method: http.MethodPost}, fixedNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeMethodNotAllowed))
	})

	t.Run("validation carries the message list", func(t *testing.T) {
		_, err := Check(getRequest("1", validQuery()), fixedNow)
		require.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		var errs ValidationErrors
		require.True(t, errors.As(err, &errs))
		assert.Len(t, errs, 1)
	})

	t.Run("unrecognised", func(t *testing.T) {
		result, err := Check(getRequest("700000000000", validQuery()), fixedNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnrecognisedReference))
		assert.Equal(t, OutcomeUnrecognised, result.Outcome)
	})

	t.Run("success", func(t *testing.T) {
		result, err := Check(getRequest("100000000000", validQuery()), fixedNow)
		require.NoError(t, err)
		assert.Equal(t, OutcomeNoMatchFound, result.Outcome)
		assert.Equal(t, NotFoundXML, result.Body)
	})
}

func TestErrorResponse_HidesInternalErrors(t *testing.T) {
	resp := ErrorResponse(errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "text/plain", resp.ContentType)
	assert.Equal(t, "Internal Server Error", resp.Body)
}

func TestSelfCheck(t *testing.T) {
	t.Run("passes for any current date", func(t *testing.T) {
		assert.NoError(t, SelfCheck(fixedNow))
		assert.NoError(t, SelfCheck(fixedNow.AddDate(50, 0, 0)))
	})

	t.Run("wraps the rejection and keeps its code", func(t *testing.T) {
		err := SelfCheck(time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC))

		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "status self check rejected")
	})
}
