package calc

import (
	"fmt"
	"math"
)

// SIPFutureValue returns the future value of a monthly contribution
// invested for years at an annual rate (percent), contributions made at
// the start of each month: FV = P * [((1+r)^n - 1) / r] * (1+r).
func SIPFutureValue(monthly, annualRatePct float64, years float64) float64 {
	r := annualRatePct / 100 / 12
	n := years * 12
	if r == 0 {
		return monthly * n
	}
	return monthly * ((math.Pow(1+r, n) - 1) / r) * (1 + r)
}

// LumpSumFutureValue returns principal compounded annually.
func LumpSumFutureValue(principal, annualRatePct, years float64) float64 {
	return principal * math.Pow(1+annualRatePct/100, years)
}

// GoalSIP returns the monthly contribution needed to reach target in the
// given years, after accounting for the growth of any existing corpus.
// A zero result means the existing corpus alone already reaches the goal.
func GoalSIP(target, existing, annualRatePct, years float64) float64 {
	r := annualRatePct / 100 / 12
	n := years * 12
	remaining := target - existing*math.Pow(1+r, n)
	if remaining <= 0 {
		return 0
	}
	if r == 0 {
		return remaining / n
	}
	return (remaining * r) / (math.Pow(1+r, n) - 1)
}

// CAGR returns the compound annual growth rate, in percent, implied by an
// initial value growing to a final value over years.
func CAGR(initial, final, years float64) (float64, error) {
	if initial <= 0 || final <= 0 || years <= 0 {
		return 0, fmt.Errorf("initial, final, and years must all be positive")
	}
	return (math.Pow(final/initial, 1/years) - 1) * 100, nil
}

// CompoundInterest returns the future value of a principal plus a monthly
// contribution, compounded n times per year at an annual rate (percent):
// FV = P*(1+r/n)^(nt) + PMT*(((1+r/n)^(nt) - 1) / (r/n)).
func CompoundInterest(principal, monthly, annualRatePct float64, compoundsPerYear int, years float64) float64 {
	if compoundsPerYear <= 0 {
		compoundsPerYear = 12
	}
	r := annualRatePct / 100
	n := float64(compoundsPerYear)
	base := 1 + r/n
	exp := n * years
	if r == 0 {
		return principal + monthly*12*years
	}
	return principal*math.Pow(base, exp) + monthly*((math.Pow(base, exp)-1)/(r/n))
}

// InflationAdjusted deflates a nominal future value by an annual inflation
// rate (percent) over years, giving its worth in today's money.
func InflationAdjusted(futureValue, inflationPct, years float64) float64 {
	return futureValue / math.Pow(1+inflationPct/100, years)
}

func init() {
	register("sip", "SIP Calculator",
		"Projects the future value of a monthly systematic investment plan.",
		func(req Request) (map[string]float64, error) {
			monthly, err := req.param("monthly_amount")
			if err != nil {
				return nil, err
			}
			rate, err := req.param("expected_return")
			if err != nil {
				return nil, err
			}
			years, err := req.param("years")
			if err != nil {
				return nil, err
			}
			fv := SIPFutureValue(monthly, rate, years)
			invested := monthly * years * 12
			return map[string]float64{
				"invested_amount": math.Round(invested),
				"returns":         math.Round(fv - invested),
				"total_value":     math.Round(fv),
			}, nil
		})

	register("goal-sip", "Goal SIP Calculator",
		"Works out the monthly SIP needed to hit a target corpus.",
		func(req Request) (map[string]float64, error) {
			target, err := req.param("target_amount")
			if err != nil {
				return nil, err
			}
			rate, err := req.param("expected_return")
			if err != nil {
				return nil, err
			}
			years, err := req.param("years")
			if err != nil {
				return nil, err
			}
			existing := req.paramDefault("existing_corpus", 0)
			monthly := GoalSIP(target, existing, rate, years)
			return map[string]float64{
				"monthly_sip":    math.Round(monthly*100) / 100,
				"total_invested": math.Round(monthly * years * 12),
			}, nil
		})

	register("mutual-fund", "Mutual Fund Calculator",
		"Estimates mutual fund growth for lump-sum or monthly investing.",
		func(req Request) (map[string]float64, error) {
			rate, err := req.param("expected_return")
			if err != nil {
				return nil, err
			}
			years, err := req.param("years")
			if err != nil {
				return nil, err
			}
			var fv, invested float64
			if req.option("method", "lumpsum") == "sip" {
				monthly, err := req.param("monthly_amount")
				if err != nil {
					return nil, err
				}
				fv = SIPFutureValue(monthly, rate, years)
				invested = monthly * years * 12
			} else {
				principal, err := req.param("amount")
				if err != nil {
					return nil, err
				}
				fv = LumpSumFutureValue(principal, rate, years)
				invested = principal
			}
			return map[string]float64{
				"invested_amount": math.Round(invested),
				"returns":         math.Round(fv - invested),
				"total_value":     math.Round(fv),
			}, nil
		})

	register("cagr", "CAGR Calculator",
		"Computes the compound annual growth rate between two values.",
		func(req Request) (map[string]float64, error) {
			initial, err := req.param("initial_value")
			if err != nil {
				return nil, err
			}
			final, err := req.param("final_value")
			if err != nil {
				return nil, err
			}
			years, err := req.param("years")
			if err != nil {
				return nil, err
			}
			cagr, err := CAGR(initial, final, years)
			if err != nil {
				return nil, err
			}
			return map[string]float64{
				"cagr":          math.Round(cagr*100) / 100,
				"total_growth":  math.Round((final/initial - 1) * 10000) / 100,
				"absolute_gain": math.Round(final - initial),
			}, nil
		})

	register("compound", "Compound Interest Calculator",
		"Compounds a principal plus monthly contributions at a chosen frequency.",
		func(req Request) (map[string]float64, error) {
			principal, err := req.param("principal")
			if err != nil {
				return nil, err
			}
			rate, err := req.param("rate")
			if err != nil {
				return nil, err
			}
			years, err := req.param("years")
			if err != nil {
				return nil, err
			}
			monthly := req.paramDefault("monthly_contribution", 0)
			freq := int(req.paramDefault("compounds_per_year", 12))
			fv := CompoundInterest(principal, monthly, rate, freq, years)
			contrib := principal + monthly*12*years
			return map[string]float64{
				"total_contributions": math.Round(contrib),
				"interest_earned":     math.Round(fv - contrib),
				"future_value":        math.Round(fv),
			}, nil
		})
}
