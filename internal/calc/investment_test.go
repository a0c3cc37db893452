package calc

import "testing"

func TestSIPFutureValue(t *testing.T) {
	tests := []struct {
		name    string
		monthly float64
		rate    float64
		years   float64
		want    float64
	}{
		{"ten year sip", 1000, 12, 10, 232339},
		{"zero rate is plain saving", 500, 0, 2, 12000},
		{"one year", 2000, 6, 1, 24794},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approx(t, "SIPFutureValue", SIPFutureValue(tt.monthly, tt.rate, tt.years), tt.want, 1)
		})
	}
}

func TestLumpSumFutureValue(t *testing.T) {
	approx(t, "LumpSumFutureValue", LumpSumFutureValue(10000, 10, 2), 12100, 0.01)
}

func TestGoalSIP(t *testing.T) {
	t.Run("from zero corpus", func(t *testing.T) {
		approx(t, "GoalSIP", GoalSIP(1000000, 0, 12, 10), 4347.09, 0.1)
	})
	t.Run("existing corpus covers goal", func(t *testing.T) {
		if got := GoalSIP(100000, 90000, 12, 10); got != 0 {
			t.Errorf("GoalSIP = %v, want 0 when the corpus already reaches the target", got)
		}
	})
	t.Run("zero rate splits evenly", func(t *testing.T) {
		approx(t, "GoalSIP", GoalSIP(12000, 0, 0, 1), 1000, 0.001)
	})
}

func TestCAGR(t *testing.T) {
	got, err := CAGR(1000, 2000, 10)
	if err != nil {
		t.Fatalf("CAGR() error = %v", err)
	}
	approx(t, "CAGR", got, 7.1773, 0.001)

	if _, err := CAGR(0, 2000, 10); err == nil {
		t.Error("CAGR() with zero initial value succeeded, want error")
	}
	if _, err := CAGR(1000, 2000, 0); err == nil {
		t.Error("CAGR() with zero years succeeded, want error")
	}
}

func TestCompoundInterest(t *testing.T) {
	t.Run("principal with contributions", func(t *testing.T) {
		approx(t, "CompoundInterest", CompoundInterest(10000, 100, 6, 12, 10), 34581.91, 1)
	})
	t.Run("no contributions matches lump sum annually", func(t *testing.T) {
		approx(t, "CompoundInterest", CompoundInterest(10000, 0, 10, 1, 2), 12100, 0.01)
	})
	t.Run("zero rate", func(t *testing.T) {
		approx(t, "CompoundInterest", CompoundInterest(1000, 100, 0, 12, 2), 3400, 0.001)
	})
}

func TestInflationAdjusted(t *testing.T) {
	// 100 deflated by 100% inflation over one year halves.
	approx(t, "InflationAdjusted", InflationAdjusted(100, 100, 1), 50, 0.001)
	approx(t, "InflationAdjusted", InflationAdjusted(1000, 0, 10), 1000, 0.001)
}

func TestRunSIP(t *testing.T) {
	out, err := Run("sip", Request{Params: map[string]float64{
		"monthly_amount":  1000,
		"expected_return": 12,
		"years":           10,
	}})
	if err != nil {
		t.Fatalf("Run(sip) error = %v", err)
	}
	approx(t, "invested_amount", out["invested_amount"], 120000, 0.5)
	approx(t, "total_value", out["total_value"], 232339, 1)
	approx(t, "returns", out["returns"], out["total_value"]-out["invested_amount"], 0.5)
}

func TestRunMutualFundMethods(t *testing.T) {
	lump, err := Run("mutual-fund", Request{
		Params:  map[string]float64{"amount": 10000, "expected_return": 10, "years": 2},
		Options: map[string]string{"method": "lumpsum"},
	})
	if err != nil {
		t.Fatalf("Run(mutual-fund, lumpsum) error = %v", err)
	}
	approx(t, "lumpsum total_value", lump["total_value"], 12100, 1)

	sip, err := Run("mutual-fund", Request{
		Params:  map[string]float64{"monthly_amount": 1000, "expected_return": 12, "years": 10},
		Options: map[string]string{"method": "sip"},
	})
	if err != nil {
		t.Fatalf("Run(mutual-fund, sip) error = %v", err)
	}
	approx(t, "sip total_value", sip["total_value"], 232339, 1)
}
