package statuscheck

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"crsc/pkg/validation"
)

// Fixed validation constants.
const (
	DisclosureRefLength = 12
	MinBirthYear        = 1900
	MinApplicantAge     = 16
)

var datePattern = regexp.MustCompile(`^(\d+)/(\d+)/(\d+)$`)

func init() {
	// "dmy" only checks the DD/MM/YYYY shape; ranges are separate rules.
	validation.MustRegister("dmy", datePattern.MatchString)
}

var satisfies = validation.Satisfies

// ValidationErrors is the ordered list of messages for a rejected request.
type ValidationErrors []string

// Error renders the list the way the 400 body carries it.
func (e ValidationErrors) Error() string {
	return "Errors: \n- " + strings.Join(e, "\n- ")
}

// birthDate holds the captured digit strings of a well-shaped dateOfBirth.
type birthDate struct {
	day, month, year string
}

// input is a request prepared once for the rule table.
type input struct {
	ref     string
	query   url.Values
	dob     *birthDate
	maxYear int64
}

func prepare(req Request, now time.Time) *input {
	in := &input{
		ref:     req.DisclosureRef,
		query:   req.Query,
		maxYear: int64(now.Year() - MinApplicantAge),
	}
	if req.Query.Has(ParamDateOfBirth) {
		if m := datePattern.FindStringSubmatch(req.Query.Get(ParamDateOfBirth)); m != nil {
			in.dob = &birthDate{day: m[1], month: m[2], year: m[3]}
		}
	}
	return in
}

// captureValue parses a digit capture; values beyond int64 clamp to MaxInt64,
// which fails every upper bound the rules use.
func captureValue(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return n
}

// rule is one independent predicate; passes reports true when the rule holds
// or does not apply.
type rule struct {
	passes  func(in *input) bool
	message func(in *input) string
}

func required(param string) rule {
	return rule{
		passes: func(in *input) bool { return in.query.Has(param) },
		message: func(*input) string {
			return fmt.Sprintf("`%s` is missing but is required.", param)
		},
	}
}

// rules run in order, all of them, every time.
var rules = []rule{
	{
		passes: func(in *input) bool { return satisfies(in.ref, fmt.Sprintf("len=%d", DisclosureRefLength)) },
		message: func(in *input) string {
			return fmt.Sprintf("`disclosureRef` must be a 12-digit string, but length was %d.", utf8.RuneCountInString(in.ref))
		},
	},
	{
		passes: func(in *input) bool { return satisfies(in.ref, "number") },
		message: func(in *input) string {
			return fmt.Sprintf("`disclosureRef` must contain only digits, but actual string was \"%s\".", in.ref)
		},
	},
	required(ParamDateOfBirth),
	{
		passes: func(in *input) bool {
			return !in.query.Has(ParamDateOfBirth) || satisfies(in.query.Get(ParamDateOfBirth), "dmy")
		},
		message: func(*input) string {
			return "`dateOfBirth` doesn't appear to be in the format DD/MM/YYYY"
		},
	},
	{
		passes: func(in *input) bool { return in.dob == nil || satisfies(captureValue(in.dob.day), "min=1,max=31") },
		message: func(in *input) string {
			return fmt.Sprintf("day of birth (from `dateOfBirth`) must be within range 1-31 but was %s.", in.dob.day)
		},
	},
	{
		passes: func(in *input) bool { return in.dob == nil || satisfies(captureValue(in.dob.month), "min=1,max=12") },
		message: func(in *input) string {
			return fmt.Sprintf("month of birth (from `dateOfBirth`) must be within range 1-12 but was %s.", in.dob.month)
		},
	},
	{
		passes: func(in *input) bool {
			return in.dob == nil || satisfies(captureValue(in.dob.year), fmt.Sprintf("min=%d", MinBirthYear))
		},
		message: func(in *input) string {
			return fmt.Sprintf("year of birth (from `dateOfBirth`) must not be less than %d but was %s.", MinBirthYear, in.dob.year)
		},
	},
	{
		passes: func(in *input) bool {
			return in.dob == nil || satisfies(captureValue(in.dob.year), fmt.Sprintf("max=%d", in.maxYear))
		},
		message: func(in *input) string {
			return fmt.Sprintf("year of birth (from `dateOfBirth`) must not be greater than %d but was %s.", in.maxYear, in.dob.year)
		},
	},
	required(ParamSurname),
	required(ParamHasAgreedTermsAndConditions),
	{
		passes: func(in *input) bool {
			return !in.query.Has(ParamHasAgreedTermsAndConditions) ||
				satisfies(in.query.Get(ParamHasAgreedTermsAndConditions), "eq=true")
		},
		message: func(*input) string {
			return "`hasAgreedTermsAndConditions` must be equal to \"true\"."
		},
	},
	required(ParamOrganisationName),
	required(ParamEmployeeSurname),
	required(ParamEmployeeForename),
}

// Validate runs every rule against req and returns the messages of those
// that failed, in rule order. now supplies the birth-year ceiling.
func Validate(req Request, now time.Time) ValidationErrors {
	in := prepare(req, now)
	var errs ValidationErrors
	for _, r := range rules {
		if !r.passes(in) {
			errs = append(errs, r.message(in))
		}
	}
	return errs
}
