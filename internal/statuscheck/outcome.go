package statuscheck

import "strconv"

// Outcome is the canned status a reference resolves to, chosen by its
// first digit. OutcomeUnrecognised is the explicit "no mapping" variant.
type Outcome uint8

const (
	OutcomeUnrecognised Outcome = iota
	OutcomeNoMatchFound
	OutcomeBlankNoNewInfo
	OutcomeNonBlankNoNewInfo
	OutcomeNewInfo
)

var outcomesByDigit = map[rune]Outcome{
	'1': OutcomeNoMatchFound,
	'2': OutcomeBlankNoNewInfo,
	'3': OutcomeNonBlankNoNewInfo,
	'4': OutcomeNewInfo,
}

// OutcomeForDigit maps the first character of a disclosure reference.
func OutcomeForDigit(d rune) Outcome {
	if o, ok := outcomesByDigit[d]; ok {
		return o
	}
	return OutcomeUnrecognised
}

// String returns the wire value used in the <status> element.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoMatchFound:
		return "NO_MATCH_FOUND"
	case OutcomeBlankNoNewInfo:
		return "BLANK_NO_NEW_INFO"
	case OutcomeNonBlankNoNewInfo:
		return "NON_BLANK_NO_NEW_INFO"
	case OutcomeNewInfo:
		return "NEW_INFO"
	case OutcomeUnrecognised:
		return "UNRECOGNISED"
	}
	return "Outcome(" + strconv.Itoa(int(o)) + ")"
}

// Label is the metrics/log form of the outcome.
func (o Outcome) Label() string {
	switch o {
	case OutcomeNoMatchFound:
		return "no_match_found"
	case OutcomeBlankNoNewInfo:
		return "blank_no_new_info"
	case OutcomeNonBlankNoNewInfo:
		return "non_blank_no_new_info"
	case OutcomeNewInfo:
		return "new_info"
	case OutcomeUnrecognised:
		return "unrecognised_reference"
	}
	return "invalid_outcome"
}
