package calc

import "testing"

func TestBracketTax(t *testing.T) {
	flat := []Bracket{{0.05, noLimit}}
	approx(t, "flat tax", BracketTax(100000, flat), 5000, 0.001)
	approx(t, "no brackets", BracketTax(100000, nil), 0, 0.001)
	approx(t, "zero income", BracketTax(0, federalBrackets["single"]), 0, 0.001)
}

func TestEstimateTax(t *testing.T) {
	t.Run("single filer in california", func(t *testing.T) {
		est, err := EstimateTax(100000, "single", "CA")
		if err != nil {
			t.Fatalf("EstimateTax() error = %v", err)
		}
		approx(t, "federal tax", est.FederalTax, 17400, 0.01)
		approx(t, "state tax", est.StateTax, 6053.48, 0.01)
		approx(t, "total", est.TotalTax, est.FederalTax+est.StateTax, 0.001)
		approx(t, "take home", est.TakeHome, 100000-est.TotalTax, 0.001)
		approx(t, "effective rate", est.EffectiveRate, est.TotalTax/1000, 0.001)
	})
	t.Run("married pays less than single at same income", func(t *testing.T) {
		single, err := EstimateTax(100000, "single", "TX")
		if err != nil {
			t.Fatal(err)
		}
		married, err := EstimateTax(100000, "married", "TX")
		if err != nil {
			t.Fatal(err)
		}
		if married.FederalTax >= single.FederalTax {
			t.Errorf("married federal %v >= single federal %v", married.FederalTax, single.FederalTax)
		}
	})
	t.Run("no income tax states", func(t *testing.T) {
		for _, state := range []string{"TX", "FL", "WA"} {
			est, err := EstimateTax(100000, "single", state)
			if err != nil {
				t.Fatalf("EstimateTax(%s) error = %v", state, err)
			}
			if est.StateTax != 0 {
				t.Errorf("%s state tax = %v, want 0", state, est.StateTax)
			}
		}
	})
	t.Run("rejects unknown inputs", func(t *testing.T) {
		if _, err := EstimateTax(100000, "widowed", "CA"); err == nil {
			t.Error("unknown filing status succeeded, want error")
		}
		if _, err := EstimateTax(100000, "single", "ZZ"); err == nil {
			t.Error("unsupported state succeeded, want error")
		}
		if _, err := EstimateTax(-1, "single", "CA"); err == nil {
			t.Error("negative income succeeded, want error")
		}
	})
}

func TestRunTax(t *testing.T) {
	out, err := Run("tax", Request{
		Params:  map[string]float64{"income": 100000},
		Options: map[string]string{"filing_status": "single", "state": "CA"},
	})
	if err != nil {
		t.Fatalf("Run(tax) error = %v", err)
	}
	approx(t, "federal_tax", out["federal_tax"], 17400, 0.01)
	approx(t, "state_tax", out["state_tax"], 6053.48, 0.02)
	approx(t, "monthly_take_home", out["monthly_take_home"], out["take_home"]/12, 0.01)
}

func TestStates(t *testing.T) {
	codes := States()
	if len(codes) < 10 {
		t.Fatalf("States() returned %d codes, want at least 10", len(codes))
	}
	seen := make(map[string]bool)
	for _, c := range codes {
		seen[c] = true
	}
	for _, want := range []string{"CA", "NY", "TX"} {
		if !seen[want] {
			t.Errorf("States() missing %s", want)
		}
	}
}
