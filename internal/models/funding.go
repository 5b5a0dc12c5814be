package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// FinancingType describes how capital spend of a funding source is financed.
type FinancingType string

const (
	FinancingCash  FinancingType = "cash"
	FinancingBond  FinancingType = "bond"
	FinancingSRF   FinancingType = "srf"
	FinancingGrant FinancingType = "grant"
)

// GeneratesDebt reports whether spend financed this way creates debt
// service. Cash spend is paid from reserves and grant spend never draws
// on the utility at all.
func (t FinancingType) GeneratesDebt() bool {
	return t == FinancingBond || t == FinancingSRF
}

// FundingSource is a source of capital funding.
type FundingSource struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// FundingKey identifies the funding source a spend amount is attributed
// to. It is either assigned to a source by id, or unassigned. Using a
// tagged value instead of a stringified id rules out collisions between
// a numeric id and the "unassigned" sentinel.
type FundingKey struct {
	id       uint64
	assigned bool
}

// AssignedFunding returns the key for a funding source id.
func AssignedFunding(id uint64) FundingKey {
	return FundingKey{id: id, assigned: true}
}

// UnassignedFunding is the key for spend without a funding source.
var UnassignedFunding = FundingKey{}

// FundingKeyFor returns the key for an optional funding source id.
func FundingKeyFor(id *uint64) FundingKey {
	if id == nil {
		return UnassignedFunding
	}

	return AssignedFunding(*id)
}

// SourceID returns the funding source id and whether the key is assigned.
func (k FundingKey) SourceID() (uint64, bool) {
	return k.id, k.assigned
}

// String returns the stringified funding source id, or "unassigned".
func (k FundingKey) String() string {
	if !k.assigned {
		return "unassigned"
	}

	return strconv.FormatUint(k.id, 10)
}

// MarshalText implements encoding.TextMarshaler so the key can be used
// as a JSON object key.
func (k FundingKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FundingKey) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" || s == "unassigned" {
		*k = UnassignedFunding
		return nil
	}

	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not a valid funding key", s)
	}

	*k = AssignedFunding(id)
	return nil
}

// FundingSourceAssumption holds the financing terms assumed for one
// funding source. A nil FundingSourceID covers unassigned spend.
type FundingSourceAssumption struct {
	FundingSourceID *uint64         `json:"fundingSourceId"`
	SourceName      string          `json:"sourceName"`
	FinancingType   FinancingType   `json:"financingType"`
	InterestRate    decimal.Decimal `json:"interestRate"` // percent
	TermYears       int             `json:"termYears"`
}

// Key returns the funding key the assumption applies to.
func (a FundingSourceAssumption) Key() FundingKey {
	return FundingKeyFor(a.FundingSourceID)
}

// Normalize clamps the assumption to usable values.
func (a FundingSourceAssumption) Normalize() FundingSourceAssumption {
	switch a.FinancingType {
	case FinancingCash, FinancingBond, FinancingSRF, FinancingGrant:
	default:
		a.FinancingType = FinancingCash
	}

	a.InterestRate = ClampNonNegative(a.InterestRate)
	a.TermYears = ClampMin(a.TermYears, 1)

	return a
}

// Name patterns for inferring a financing type from a funding source
// name when no explicit assumption exists.
var financingTypePatterns = []struct {
	pattern string
	t       FinancingType
}{
	{"*bond*", FinancingBond},
	{"*srf*", FinancingSRF},
	{"*revolving*", FinancingSRF},
	{"*state*loan*", FinancingSRF},
	{"*grant*", FinancingGrant},
}

// DefaultAssumption synthesizes an assumption for a funding source that
// has none. The financing type is inferred from the source name and
// falls back to cash.
func DefaultAssumption(source FundingSource) FundingSourceAssumption {
	assumption := FundingSourceAssumption{
		FundingSourceID: &source.ID,
		SourceName:      source.Name,
		FinancingType:   FinancingCash,
		TermYears:       20,
	}

	name := strings.ToLower(source.Name)
	for _, p := range financingTypePatterns {
		if glob.Glob(p.pattern, name) {
			assumption.FinancingType = p.t
			break
		}
	}

	switch assumption.FinancingType {
	case FinancingBond:
		assumption.InterestRate = decimal.NewFromInt(4)
	case FinancingSRF:
		assumption.InterestRate = decimal.NewFromInt(2)
		assumption.TermYears = 30
	}

	return assumption
}
