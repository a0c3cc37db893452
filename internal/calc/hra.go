package calc

import "math"

// HRAExemption returns the exempt portion of house rent allowance: the
// minimum of the actual HRA received, 50% of basic salary in a metro city
// (40% otherwise), and rent paid less 10% of basic salary (floored at 0).
func HRAExemption(basic, hra, rent float64, metro bool) float64 {
	basicPercent := 0.4
	if metro {
		basicPercent = 0.5
	}
	exemption := math.Min(hra, basic*basicPercent)
	return math.Min(exemption, math.Max(0, rent-basic*0.1))
}

func init() {
	register("hra", "HRA Calculator",
		"Computes the exempt and taxable portions of house rent allowance.",
		func(req Request) (map[string]float64, error) {
			basic, err := req.param("basic_salary")
			if err != nil {
				return nil, err
			}
			hra, err := req.param("hra_received")
			if err != nil {
				return nil, err
			}
			rent, err := req.param("rent_paid")
			if err != nil {
				return nil, err
			}
			metro := req.option("city_type", "metro") == "metro"
			exemption := HRAExemption(basic, hra, rent, metro)
			return map[string]float64{
				"hra_exemption": math.Round(exemption*100) / 100,
				"taxable_hra":   math.Round(math.Max(0, hra-exemption)*100) / 100,
			}, nil
		})
}
