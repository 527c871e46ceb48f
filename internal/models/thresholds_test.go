package models

import (
	"encoding/json"
	"testing"
)

func TestDefaultThresholdsLiteralValues(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		name string
		band ThresholdBand
		warn float64
		crit float64
	}{
		{"ctr", th.CTR, 0.01, 0.005},
		{"cpa", th.CPA, 50, 100},
		{"roi", th.ROI, 0.2, 0.0},
		{"roas", th.ROAS, 1.5, 1.0},
	}

	for _, tc := range cases {
		if tc.band.Warning != tc.warn {
			t.Errorf("%s warning = %v, want %v", tc.name, tc.band.Warning, tc.warn)
		}
		if tc.band.Critical != tc.crit {
			t.Errorf("%s critical = %v, want %v", tc.name, tc.band.Critical, tc.crit)
		}
	}
}

func TestDefaultThresholdsDirections(t *testing.T) {
	th := DefaultThresholds()

	// Lower is worse for ctr/roi/roas, so warning sits above critical.
	for _, tc := range []struct {
		name string
		band ThresholdBand
	}{
		{"ctr", th.CTR}, {"roi", th.ROI}, {"roas", th.ROAS},
	} {
		if tc.band.Warning <= tc.band.Critical {
			t.Errorf("%s: warning %v should be above critical %v", tc.name, tc.band.Warning, tc.band.Critical)
		}
	}

	// Higher is worse for cpa, so warning sits below critical.
	if th.CPA.Warning >= th.CPA.Critical {
		t.Errorf("cpa: warning %v should be below critical %v", th.CPA.Warning, th.CPA.Critical)
	}
}

func TestDefaultThresholdsJSONRoundTrip(t *testing.T) {
	th := DefaultThresholds()

	b, err := json.Marshal(th)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded PerformanceThresholds
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != th {
		t.Fatalf("round trip mismatch: %+v != %+v", decoded, th)
	}

	want := `{"ctr":{"warning":0.01,"critical":0.005},"cpa":{"warning":50,"critical":100},"roi":{"warning":0.2,"critical":0},"roas":{"warning":1.5,"critical":1}}`
	if string(b) != want {
		t.Fatalf("serialized form = %s, want %s", b, want)
	}
}
