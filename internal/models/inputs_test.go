package models

import (
	"encoding/json"
	"testing"

	"github.com/julianstephens/lifetracker/internal/dates"
)

func strPtr(s string) *string { return &s }

func TestLifeTaskPatchUnmarshal(t *testing.T) {
	var p LifeTaskPatch
	if err := json.Unmarshal([]byte(`{"name":"Read","description":null}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !p.Name.Present() || p.Name.Value != "Read" {
		t.Errorf("Name = %+v", p.Name)
	}
	if !p.Description.Set || !p.Description.Null {
		t.Errorf("Description = %+v, want explicit null", p.Description)
	}
	if p.Category.Set {
		t.Errorf("Category = %+v, want unset", p.Category)
	}
	if p.TargetValue.Set {
		t.Errorf("TargetValue = %+v, want unset", p.TargetValue)
	}
}

func TestLifeTaskPatchApply(t *testing.T) {
	base := LifeTask{
		ID:          "t1",
		Name:        "Run",
		Description: strPtr("morning runs"),
		Category:    "Health",
		TargetValue: 50,
	}

	tests := []struct {
		name  string
		patch string
		want  LifeTask
	}{
		{
			name:  "empty patch keeps everything",
			patch: `{}`,
			want:  base,
		},
		{
			name:  "only target value",
			patch: `{"target_value":75}`,
			want:  LifeTask{ID: "t1", Name: "Run", Description: strPtr("morning runs"), Category: "Health", TargetValue: 75},
		},
		{
			name:  "zero target value is applied, not treated as unset",
			patch: `{"target_value":0}`,
			want:  LifeTask{ID: "t1", Name: "Run", Description: strPtr("morning runs"), Category: "Health", TargetValue: 0},
		},
		{
			name:  "clear description",
			patch: `{"description":null}`,
			want:  LifeTask{ID: "t1", Name: "Run", Category: "Health", TargetValue: 50},
		},
		{
			name:  "null name ignored",
			patch: `{"name":null,"category":"Fitness"}`,
			want:  LifeTask{ID: "t1", Name: "Run", Description: strPtr("morning runs"), Category: "Fitness", TargetValue: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p LifeTaskPatch
			if err := json.Unmarshal([]byte(tt.patch), &p); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			got := p.Apply(base)

			if got.Name != tt.want.Name || got.Category != tt.want.Category || got.TargetValue != tt.want.TargetValue {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
			if (got.Description == nil) != (tt.want.Description == nil) {
				t.Fatalf("Description = %v, want %v", got.Description, tt.want.Description)
			}
			if got.Description != nil && *got.Description != *tt.want.Description {
				t.Errorf("Description = %q, want %q", *got.Description, *tt.want.Description)
			}
		})
	}
}

func TestLifeTaskPatchEmpty(t *testing.T) {
	if !(LifeTaskPatch{}).Empty() {
		t.Error("zero patch should be empty")
	}
	if (LifeTaskPatch{Name: Some("x")}).Empty() {
		t.Error("patch with name should not be empty")
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var p LifeTaskPatch
	if err := json.Unmarshal([]byte(`{"target_value":"lots"}`), &p); err == nil {
		t.Error("expected type error for string target_value")
	}
}

func TestCreateInputsValidate(t *testing.T) {
	day := dates.MustParse("2024-01-01")

	tests := []struct {
		name    string
		input   interface{ Validate() error }
		wantErr bool
	}{
		{"journal create without date", JournalEntryCreate{Content: "x"}, true},
		{"journal create with date", JournalEntryCreate{Date: day}, false},
		{"journal update without content", JournalEntryUpdate{}, true},
		{"journal update with empty content", JournalEntryUpdate{Content: strPtr("")}, false},
		{"task with blank name", LifeTaskCreate{Name: "  "}, true},
		{"task with name", LifeTaskCreate{Name: "Read"}, false},
		{"progress without task", ProgressEntryCreate{Date: day}, true},
		{"progress without date", ProgressEntryCreate{TaskID: "t1"}, true},
		{"progress complete", ProgressEntryCreate{TaskID: "t1", Date: day}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
