package calc

import (
	"math"
	"testing"
)

func TestEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     float64
		want      float64
	}{
		{"thirty year loan", 200000, 6, 30, 1199.10},
		{"short loan", 10000, 12, 1, 888.49},
		{"zero rate divides evenly", 12000, 0, 1, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approx(t, "EMI", EMI(tt.principal, tt.rate, tt.years), tt.want, 0.01)
		})
	}
}

func TestAmortizationSchedule(t *testing.T) {
	rows := AmortizationSchedule(100000, 6, 15)
	if len(rows) != 180 {
		t.Fatalf("schedule has %d rows, want 180", len(rows))
	}
	approx(t, "first month interest", rows[0].Interest, 500, 0.001)
	if last := rows[len(rows)-1]; last.Balance != 0 {
		t.Errorf("final balance = %v, want 0", last.Balance)
	}
	var principalPaid float64
	for _, row := range rows {
		principalPaid += row.Principal
	}
	approx(t, "total principal repaid", principalPaid, 100000, 0.01)
	for i := 1; i < len(rows); i++ {
		if rows[i].Balance > rows[i-1].Balance {
			t.Fatalf("balance rose at month %d: %v -> %v", rows[i].Month, rows[i-1].Balance, rows[i].Balance)
		}
	}
}

func TestMortgage(t *testing.T) {
	t.Run("with pmi below twenty percent down", func(t *testing.T) {
		pmt, err := Mortgage(300000, 30000, 6, 30, 3600, 1200)
		if err != nil {
			t.Fatalf("Mortgage() error = %v", err)
		}
		approx(t, "principal and interest", pmt.PrincipalAndInterest, 1618.79, 0.01)
		approx(t, "pmi", pmt.PMI, 225, 0.001)
		approx(t, "tax", pmt.Tax, 300, 0.001)
		approx(t, "insurance", pmt.Insurance, 100, 0.001)
		approx(t, "total", pmt.Total(), 1618.79+225+300+100, 0.01)
	})
	t.Run("no pmi at twenty percent down", func(t *testing.T) {
		pmt, err := Mortgage(300000, 60000, 6, 30, 0, 0)
		if err != nil {
			t.Fatalf("Mortgage() error = %v", err)
		}
		if pmt.PMI != 0 {
			t.Errorf("PMI = %v, want 0 at 20%% down", pmt.PMI)
		}
	})
	t.Run("rejects bad inputs", func(t *testing.T) {
		if _, err := Mortgage(0, 0, 6, 30, 0, 0); err == nil {
			t.Error("Mortgage() with zero price succeeded, want error")
		}
		if _, err := Mortgage(100000, 100000, 6, 30, 0, 0); err == nil {
			t.Error("Mortgage() with full down payment succeeded, want error")
		}
	})
}

func TestRunLoan(t *testing.T) {
	out, err := Run("loan", Request{Params: map[string]float64{
		"principal": 200000,
		"rate":      6,
		"years":     30,
	}})
	if err != nil {
		t.Fatalf("Run(loan) error = %v", err)
	}
	approx(t, "monthly_payment", out["monthly_payment"], 1199.10, 0.01)
	wantTotal := out["monthly_payment"] * 360
	if math.Abs(out["total_payment"]-wantTotal) > 1 {
		t.Errorf("total_payment = %v, want about %v", out["total_payment"], wantTotal)
	}
	approx(t, "total_interest", out["total_interest"], out["total_payment"]-200000, 0.01)
}
