package calc

import (
	"errors"
	"math"
)

var errRetirementAge = errors.New("retirement age must be greater than current age")

// FIREPlan is the output of the financial-independence calculator, built
// around the 4% withdrawal rule (a corpus of 25x annual expenses).
type FIREPlan struct {
	TargetCorpus    float64 // inflation-adjusted corpus needed at retirement
	FutureExpenses  float64 // annual expenses at retirement after inflation
	SavingsGrowth   float64 // what current savings grow to by retirement
	MonthlyRequired float64 // additional monthly saving needed to close the gap
}

// FIRE computes the retirement corpus and required monthly savings.
// monthlyExpenses are today's; inflationPct and returnPct are annual
// rates in percent; years is the time until the target retirement age.
func FIRE(monthlyExpenses, currentSavings, inflationPct, returnPct, years float64) FIREPlan {
	annualExpenses := monthlyExpenses * 12
	inflation := inflationPct / 100
	ret := returnPct / 100

	futureExpenses := annualExpenses * math.Pow(1+inflation, years)
	target := futureExpenses * 25
	futureSavings := currentSavings * math.Pow(1+ret, years)

	plan := FIREPlan{
		TargetCorpus:   target,
		FutureExpenses: futureExpenses,
		SavingsGrowth:  futureSavings,
	}

	gap := target - futureSavings
	if gap <= 0 {
		return plan
	}
	r := ret / 12
	n := years * 12
	if r == 0 {
		plan.MonthlyRequired = gap / n
	} else {
		plan.MonthlyRequired = gap * r / (math.Pow(1+r, n) - 1)
	}
	return plan
}

func init() {
	register("fire", "FIRE Calculator",
		"Plans the corpus and monthly savings needed for early retirement.",
		func(req Request) (map[string]float64, error) {
			expenses, err := req.param("monthly_expenses")
			if err != nil {
				return nil, err
			}
			age, err := req.param("current_age")
			if err != nil {
				return nil, err
			}
			retireAge, err := req.param("retirement_age")
			if err != nil {
				return nil, err
			}
			if retireAge <= age {
				return nil, errRetirementAge
			}
			savings := req.paramDefault("current_savings", 0)
			inflation := req.paramDefault("inflation", 3)
			ret := req.paramDefault("expected_return", 7)

			plan := FIRE(expenses, savings, inflation, ret, retireAge-age)
			return map[string]float64{
				"target_corpus":    math.Round(plan.TargetCorpus),
				"future_expenses":  math.Round(plan.FutureExpenses),
				"savings_growth":   math.Round(plan.SavingsGrowth),
				"monthly_required": math.Round(plan.MonthlyRequired*100) / 100,
			}, nil
		})

	register("inflation", "Inflation Adjusted Returns",
		"Deflates a future value into today's purchasing power.",
		func(req Request) (map[string]float64, error) {
			fv, err := req.param("future_value")
			if err != nil {
				return nil, err
			}
			inflation, err := req.param("inflation")
			if err != nil {
				return nil, err
			}
			years, err := req.param("years")
			if err != nil {
				return nil, err
			}
			adjusted := InflationAdjusted(fv, inflation, years)
			return map[string]float64{
				"adjusted_value":        math.Round(adjusted*100) / 100,
				"purchasing_power_loss": math.Round((fv-adjusted)*100) / 100,
			}, nil
		})
}
