package calc

import "testing"

func TestHRAExemption(t *testing.T) {
	tests := []struct {
		name  string
		basic float64
		hra   float64
		rent  float64
		metro bool
		want  float64
	}{
		{"rent component is the minimum", 50000, 20000, 18000, true, 13000},
		{"metro salary cap", 50000, 25000, 30000, true, 25000},
		{"non-metro salary cap", 50000, 25000, 30000, false, 20000},
		{"rent below ten percent of basic", 50000, 20000, 4000, true, 0},
		{"no hra received", 50000, 0, 18000, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HRAExemption(tt.basic, tt.hra, tt.rent, tt.metro); got != tt.want {
				t.Errorf("HRAExemption(%v, %v, %v, %v) = %v, want %v",
					tt.basic, tt.hra, tt.rent, tt.metro, got, tt.want)
			}
		})
	}
}

func TestRunHRA(t *testing.T) {
	out, err := Run("hra", Request{
		Params: map[string]float64{
			"basic_salary": 50000,
			"hra_received": 20000,
			"rent_paid":    18000,
		},
		Options: map[string]string{"city_type": "metro"},
	})
	if err != nil {
		t.Fatalf("Run(hra) error = %v", err)
	}
	approx(t, "hra_exemption", out["hra_exemption"], 13000, 0.01)
	approx(t, "taxable_hra", out["taxable_hra"], 7000, 0.01)
}
