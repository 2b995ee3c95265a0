package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2025-01-01", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"2025-1-1", true},
		{"2025-01-01T00:00:00Z", true},
		{"", true},
		{"not-a-date", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && d.String() != tt.input {
				t.Errorf("Parse(%q).String() = %q", tt.input, d.String())
			}
		})
	}
}

func TestFromStoredTolerant(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantValid bool
		wantStr   string
	}{
		{"valid string", "2025-03-04", true, "2025-03-04"},
		{"valid bytes", []byte("2025-03-04"), true, "2025-03-04"},
		{"time value", time.Date(2025, 3, 4, 18, 30, 0, 0, time.UTC), true, "2025-03-04"},
		{"corrupt string passes through", "04/03/2025", false, "04/03/2025"},
		{"non-string passes through", int64(20250304), false, "20250304"},
		{"nil", nil, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromStored(tt.input)
			if d.Valid() != tt.wantValid {
				t.Errorf("Valid() = %v, want %v", d.Valid(), tt.wantValid)
			}
			if d.String() != tt.wantStr {
				t.Errorf("String() = %q, want %q", d.String(), tt.wantStr)
			}
		})
	}
}

func TestScanNeverFails(t *testing.T) {
	var d Date
	if err := d.Scan("garbage"); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if d.String() != "garbage" {
		t.Errorf("Scan kept %q, want raw value", d.String())
	}

	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != "garbage" {
		t.Errorf("Value() = %v, want raw value written back unchanged", v)
	}
}

func TestValue(t *testing.T) {
	v, err := MustParse("2025-01-02").Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != "2025-01-02" {
		t.Errorf("Value() = %v", v)
	}

	v, err = Date{}.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Errorf("zero Value() = %v, want nil", v)
	}
}

func TestJSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"date":"2025-01-01"}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !p.Date.Equal(Of(2025, time.January, 1)) {
		t.Errorf("decoded %v", p.Date)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"date":"2025-01-01"}` {
		t.Errorf("Marshal() = %s", out)
	}

	for _, bad := range []string{`{"date":"01-01-2025"}`, `{"date":20250101}`, `{"date":null}`} {
		var p payload
		if err := json.Unmarshal([]byte(bad), &p); err == nil {
			t.Errorf("Unmarshal(%s) succeeded, want error", bad)
		}
	}

	raw, err := json.Marshal(payload{Date: FromStored("bogus")})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"date":"bogus"}` {
		t.Errorf("raw Marshal() = %s", raw)
	}
}

func TestWindow(t *testing.T) {
	from, to := Window(MustParse("2025-03-02"), 7)
	if from.String() != "2025-02-24" {
		t.Errorf("from = %s, want 2025-02-24", from)
	}
	if to.String() != "2025-03-02" {
		t.Errorf("to = %s", to)
	}
}

func TestToday(t *testing.T) {
	// 23:30 UTC is already the next day in Tokyo.
	now := time.Date(2025, 6, 30, 23, 30, 0, 0, time.UTC)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	if got := Today(now, time.UTC).String(); got != "2025-06-30" {
		t.Errorf("Today(UTC) = %s", got)
	}
	if got := Today(now, tokyo).String(); got != "2025-07-01" {
		t.Errorf("Today(Tokyo) = %s", got)
	}
}
