package calc

import "math"

// FDMaturity returns the maturity amount of a fixed deposit compounded
// compoundsPerYear times: A = P * (1 + r/n)^(n*t). Quarterly compounding
// (n = 4) is the conventional default.
func FDMaturity(principal, annualRatePct float64, compoundsPerYear int, years float64) float64 {
	if compoundsPerYear <= 0 {
		compoundsPerYear = 4
	}
	r := annualRatePct / 100
	n := float64(compoundsPerYear)
	return principal * math.Pow(1+r/n, n*years)
}

// RDMaturity returns the maturity amount of a recurring deposit with a
// fixed monthly installment: A = P * n * (1 + r*(n+1)/2) with r the
// monthly rate and n the number of months.
func RDMaturity(monthly, annualRatePct float64, months int) float64 {
	r := annualRatePct / 100 / 12
	n := float64(months)
	return monthly * n * (1 + r*(n+1)/2)
}

// EffectiveAnnualRate converts a nominal annual rate compounded n times
// per year into its effective annual equivalent, both in percent.
func EffectiveAnnualRate(annualRatePct float64, compoundsPerYear int) float64 {
	if compoundsPerYear <= 0 {
		compoundsPerYear = 1
	}
	r := annualRatePct / 100
	n := float64(compoundsPerYear)
	return (math.Pow(1+r/n, n) - 1) * 100
}

func init() {
	register("fd", "Fixed Deposit Calculator",
		"Computes FD maturity value with configurable compounding.",
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
			freq := int(req.paramDefault("compounds_per_year", 4))
			maturity := FDMaturity(principal, rate, freq, years)
			return map[string]float64{
				"maturity_amount": math.Round(maturity*100) / 100,
				"interest_earned": math.Round((maturity - principal) * 100) / 100,
				"effective_rate":  math.Round(EffectiveAnnualRate(rate, freq)*100) / 100,
			}, nil
		})

	register("rd", "Recurring Deposit Calculator",
		"Computes RD maturity value from a fixed monthly deposit.",
		func(req Request) (map[string]float64, error) {
			monthly, err := req.param("monthly_deposit")
			if err != nil {
				return nil, err
			}
			rate, err := req.param("rate")
			if err != nil {
				return nil, err
			}
			months, err := req.param("months")
			if err != nil {
				return nil, err
			}
			maturity := RDMaturity(monthly, rate, int(months))
			deposited := monthly * months
			return map[string]float64{
				"maturity_amount": math.Round(maturity*100) / 100,
				"total_deposit":   math.Round(deposited*100) / 100,
				"interest_earned": math.Round((maturity - deposited) * 100) / 100,
			}, nil
		})
}
