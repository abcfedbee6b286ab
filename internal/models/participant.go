package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownParticipantType is returned when a free-text type matches no known synonym.
var ErrUnknownParticipantType = errors.New("unknown participant type")

// ParticipantType is the closed set of participant categories.
// The category decides which default fee of the trip applies.
type ParticipantType string

const (
	Adult ParticipantType = "adult"
	Child ParticipantType = "child"
)

// typeSynonyms maps normalised free text to a ParticipantType.
var typeSynonyms = map[string]ParticipantType{
	"adult": Adult,
	"كبير":  Adult,
	"كبار":  Adult,
	"بالغ":  Adult,
	"ك":     Adult,
	"child": Child,
	"kid":   Child,
	"صغير":  Child,
	"صغار":  Child,
	"طفل":   Child,
	"ص":     Child,
}

// ParseParticipantType maps free text from the roster or a form to a ParticipantType.
// Empty text is an adult.
func ParseParticipantType(s string) (ParticipantType, error) {
	key := NormalizeName(s)
	if key == "" {
		return Adult, nil
	}
	if t, ok := typeSynonyms[key]; ok {
		return t, nil
	}
	// Roster sheets carry variants such as "طفل صغير".
	if strings.Contains(key, "صغير") || strings.Contains(key, "طفل") {
		return Child, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownParticipantType, s)
}

// UnmarshalJSON runs stored text, including the free-text values of older
// blobs ("صغير", "طفل صغير"), through ParseParticipantType. Unknown text
// loads as Adult so a blob never fails to load over one participant.
func (t *ParticipantType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("participant type: %w", err)
	}
	pt, err := ParseParticipantType(s)
	if err != nil {
		slog.Warn("Unknown participant type, loading as adult", "type", s)
		pt = Adult
	}
	*t = pt
	return nil
}

// Label returns the Arabic label used in reports.
func (t ParticipantType) Label() string {
	if t == Child {
		return "صغير"
	}
	return "كبير"
}

// MasterParticipant is one row of the remote roster.
type MasterParticipant struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Type ParticipantType `json:"type"`
}

// TripParticipant is a person attached to a trip.
//
// PaidAmount may exceed Fee; the difference is surplus the participant
// contributed on top of their own share.
type TripParticipant struct {
	MasterParticipant

	// Fee is the contribution expected from this participant.
	// Supporters have a zero fee.
	Fee decimal.Decimal `json:"fee"`

	// PaidAmount is the cumulative amount received from this participant.
	PaidAmount decimal.Decimal `json:"paidAmount"`

	// PaymentMethod records how the participant paid (see the Method constants).
	PaymentMethod string `json:"paymentMethod,omitempty"`

	// Notes is a free-text, newline separated history of settlement events.
	Notes string `json:"notes,omitempty"`
}

// AppendNote adds a line to the participant's notes.
func (p *TripParticipant) AppendNote(line string) {
	if p.Notes == "" {
		p.Notes = line
		return
	}
	p.Notes += "\n" + line
}

// Payment methods offered to participants.
const (
	MethodCash      = "كاش"
	MethodSTCPay    = "STC Pay"
	MethodAlRajhi   = "بنك الراجحي"
	MethodAlAhli    = "بنك الأهلي"
	MethodRiyad     = "بنك الرياض"
	MethodAlinma    = "بنك الإنماء"
	MethodOther     = "أخرى"
	MethodAsExpense = "دفعها كمصروف"

	// coveredByPrefix precedes the supporter's name when someone else paid the fee.
	coveredByPrefix = "غطاها: "
)

// CoveredBy returns the payment method recorded on a participant whose fee
// was covered by a supporter.
func CoveredBy(name string) string {
	return coveredByPrefix + name
}

// participantNamespace scopes the name-derived participant IDs.
var participantNamespace = uuid.MustParse("6f1c7a52-3c1e-4b8e-9a57-0d2b51f3c2a4")

var folder = cases.Fold()

// NormalizeName folds case, applies NFC and collapses whitespace so that the
// same person typed twice yields the same key.
func NormalizeName(name string) string {
	s := norm.NFC.String(name)
	s = folder.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// ParticipantID derives a stable identifier from a participant's name.
// Re-fetching the roster yields the same IDs.
func ParticipantID(name string) string {
	return uuid.NewSHA1(participantNamespace, []byte(NormalizeName(name))).String()
}
