package calc

import (
	"fmt"
	"math"
)

// EMI returns the fixed monthly payment on a loan:
// P * r * (1+r)^n / ((1+r)^n - 1), with r the monthly rate and n the
// number of monthly payments.
func EMI(principal, annualRatePct float64, years float64) float64 {
	r := annualRatePct / 100 / 12
	n := years * 12
	if r == 0 {
		return principal / n
	}
	pow := math.Pow(1+r, n)
	return principal * (r * pow) / (pow - 1)
}

// AmortizationRow is one month of a repayment schedule.
type AmortizationRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// AmortizationSchedule returns the month-by-month breakdown of a loan.
func AmortizationSchedule(principal, annualRatePct float64, years float64) []AmortizationRow {
	r := annualRatePct / 100 / 12
	n := int(years * 12)
	payment := EMI(principal, annualRatePct, years)

	rows := make([]AmortizationRow, 0, n)
	balance := principal
	for m := 1; m <= n; m++ {
		interest := balance * r
		paid := payment - interest
		balance -= paid
		if m == n || balance < 0 {
			// Absorb rounding drift into the final payment.
			paid += balance
			balance = 0
		}
		rows = append(rows, AmortizationRow{
			Month:     m,
			Payment:   payment,
			Principal: paid,
			Interest:  interest,
			Balance:   balance,
		})
	}
	return rows
}

// MortgagePayment breaks a monthly mortgage payment into its parts.
// PMI of 1% of the loan amount per year applies below 20% down.
type MortgagePayment struct {
	PrincipalAndInterest float64
	PMI                  float64
	Tax                  float64
	Insurance            float64
}

// Total returns the all-in monthly payment.
func (m MortgagePayment) Total() float64 {
	return m.PrincipalAndInterest + m.PMI + m.Tax + m.Insurance
}

// Mortgage computes the monthly payment on a home purchase after a down
// payment, including PMI, property tax, and insurance escrow.
func Mortgage(homePrice, downPayment, annualRatePct, years, annualTax, annualInsurance float64) (MortgagePayment, error) {
	if homePrice <= 0 {
		return MortgagePayment{}, fmt.Errorf("home price must be positive")
	}
	if downPayment < 0 || downPayment >= homePrice {
		return MortgagePayment{}, fmt.Errorf("down payment must be in [0, home price)")
	}
	loanAmount := homePrice - downPayment
	pmt := MortgagePayment{
		PrincipalAndInterest: EMI(loanAmount, annualRatePct, years),
		Tax:                  annualTax / 12,
		Insurance:            annualInsurance / 12,
	}
	if downPayment/homePrice*100 < 20 {
		pmt.PMI = loanAmount * 0.01 / 12
	}
	return pmt, nil
}

func init() {
	register("loan", "Loan Calculator",
		"Computes the monthly EMI and total interest on a loan.",
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
			emi := EMI(principal, rate, years)
			total := emi * years * 12
			return map[string]float64{
				"monthly_payment": math.Round(emi*100) / 100,
				"total_payment":   math.Round(total*100) / 100,
				"total_interest":  math.Round((total - principal) * 100) / 100,
			}, nil
		})

	register("mortgage", "Mortgage Calculator",
		"Computes the full monthly mortgage payment including PMI, tax, and insurance.",
		func(req Request) (map[string]float64, error) {
			price, err := req.param("home_price")
			if err != nil {
				return nil, err
			}
			down, err := req.param("down_payment")
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
			pmt, err := Mortgage(price, down, rate, years,
				req.paramDefault("property_tax", 0),
				req.paramDefault("insurance", 0))
			if err != nil {
				return nil, err
			}
			return map[string]float64{
				"principal_and_interest": math.Round(pmt.PrincipalAndInterest*100) / 100,
				"pmi":                    math.Round(pmt.PMI*100) / 100,
				"tax_and_insurance":      math.Round((pmt.Tax+pmt.Insurance)*100) / 100,
				"total_monthly":          math.Round(pmt.Total()*100) / 100,
			}, nil
		})
}
