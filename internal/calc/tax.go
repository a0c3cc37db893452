package calc

import (
	"fmt"
	"math"
	"strings"
)

// Bracket is one marginal tax bracket: income up to Limit is taxed at
// Rate (a fraction, not percent). The final bracket uses an infinite
// limit.
type Bracket struct {
	Rate  float64
	Limit float64
}

var noLimit = math.Inf(1)

// 2023 federal brackets by filing status.
var federalBrackets = map[string][]Bracket{
	"single": {
		{0.10, 11000}, {0.12, 44725}, {0.22, 95375}, {0.24, 182100},
		{0.32, 231250}, {0.35, 578125}, {0.37, noLimit},
	},
	"married": {
		{0.10, 22000}, {0.12, 89450}, {0.22, 190750}, {0.24, 364200},
		{0.32, 462500}, {0.35, 693750}, {0.37, noLimit},
	},
}

// 2023 state brackets. States with no income tax carry an empty slice.
var stateBrackets = map[string][]Bracket{
	"CA": {
		{0.01, 10099}, {0.02, 23942}, {0.04, 37788}, {0.06, 52455},
		{0.08, 66295}, {0.093, 338639}, {0.103, 406364}, {0.113, 677275},
		{0.123, noLimit},
	},
	"NY": {
		{0.04, 8500}, {0.045, 11700}, {0.0525, 13900}, {0.059, 80650},
		{0.0597, 215400}, {0.0633, 1077550}, {0.0685, 5000000},
		{0.0882, noLimit},
	},
	"TX": {},
	"FL": {},
	"WA": {},
	"AZ": {{0.025, noLimit}},
	"CO": {{0.044, noLimit}},
	"IL": {{0.0495, noLimit}},
	"MA": {{0.05, noLimit}},
	"PA": {{0.0307, noLimit}},
}

// BracketTax applies a marginal bracket schedule to an income.
func BracketTax(income float64, brackets []Bracket) float64 {
	var tax, previousLimit float64
	remaining := income
	for _, b := range brackets {
		taxable := math.Min(remaining, b.Limit-previousLimit)
		if taxable <= 0 {
			break
		}
		tax += taxable * b.Rate
		remaining -= taxable
		previousLimit = b.Limit
	}
	return tax
}

// TaxEstimate is the combined federal and state liability for an income.
type TaxEstimate struct {
	FederalTax    float64
	StateTax      float64
	TotalTax      float64
	EffectiveRate float64 // percent of gross income
	TakeHome      float64
}

// EstimateTax computes federal plus state income tax. filingStatus is
// "single" or "married"; state is a two-letter code from the supported
// table.
func EstimateTax(income float64, filingStatus, state string) (TaxEstimate, error) {
	if income < 0 {
		return TaxEstimate{}, fmt.Errorf("income must not be negative")
	}
	fed, ok := federalBrackets[strings.ToLower(filingStatus)]
	if !ok {
		return TaxEstimate{}, fmt.Errorf("unknown filing status %q", filingStatus)
	}
	st, ok := stateBrackets[strings.ToUpper(state)]
	if !ok {
		return TaxEstimate{}, fmt.Errorf("unsupported state %q", state)
	}

	est := TaxEstimate{
		FederalTax: BracketTax(income, fed),
		StateTax:   BracketTax(income, st),
	}
	est.TotalTax = est.FederalTax + est.StateTax
	est.TakeHome = income - est.TotalTax
	if income > 0 {
		est.EffectiveRate = est.TotalTax / income * 100
	}
	return est, nil
}

// States returns the supported state codes.
func States() []string {
	codes := make([]string, 0, len(stateBrackets))
	for code := range stateBrackets {
		codes = append(codes, code)
	}
	return codes
}

func init() {
	register("tax", "Tax Calculator",
		"Estimates US federal and state income tax and take-home pay.",
		func(req Request) (map[string]float64, error) {
			income, err := req.param("income")
			if err != nil {
				return nil, err
			}
			est, err := EstimateTax(income,
				req.option("filing_status", "single"),
				req.option("state", "CA"))
			if err != nil {
				return nil, err
			}
			return map[string]float64{
				"federal_tax":       math.Round(est.FederalTax*100) / 100,
				"state_tax":         math.Round(est.StateTax*100) / 100,
				"total_tax":         math.Round(est.TotalTax*100) / 100,
				"effective_rate":    math.Round(est.EffectiveRate*100) / 100,
				"take_home":         math.Round(est.TakeHome*100) / 100,
				"monthly_take_home": math.Round(est.TakeHome/12*100) / 100,
			}, nil
		})
}
