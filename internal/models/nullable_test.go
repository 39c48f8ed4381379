package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestNullableString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue string
	}{
		{
			name:      "field present with string value",
			json:      `{"notes": "hello"}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "hello",
		},
		{
			name:      "field present with null value",
			json:      `{"notes": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: "",
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: "",
		},
		{
			name:      "field present with empty string",
			json:      `{"notes": ""}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Notes NullableString `json:"notes"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.Notes.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.Notes.Set, tt.wantSet)
			}
			if result.Notes.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Notes.Valid, tt.wantValid)
			}
			if result.Notes.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", result.Notes.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableString_ToPtr(t *testing.T) {
	tests := []struct {
		name    string
		ns      NullableString
		wantNil bool
		wantVal string
	}{
		{
			name:    "valid string",
			ns:      NullableString{Value: "hello", Valid: true, Set: true},
			wantNil: false,
			wantVal: "hello",
		},
		{
			name:    "null value",
			ns:      NullableString{Valid: false, Set: true},
			wantNil: true,
		},
		{
			name:    "not set",
			ns:      NullableString{Valid: false, Set: false},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ptr := tt.ns.ToPtr()
			if tt.wantNil {
				if ptr != nil {
					t.Errorf("ToPtr() = %v, want nil", *ptr)
				}
			} else {
				if ptr == nil {
					t.Errorf("ToPtr() = nil, want %q", tt.wantVal)
				} else if *ptr != tt.wantVal {
					t.Errorf("ToPtr() = %q, want %q", *ptr, tt.wantVal)
				}
			}
		})
	}
}

func TestNullableString_JSONSchema(t *testing.T) {
	schema, err := NullableString{}.JSONSchema()
	if err != nil {
		t.Fatalf("JSONSchema error: %v", err)
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(raw) != `{"type":["string","null"]}` {
		t.Errorf("schema = %s, want nullable string", raw)
	}
}

func TestUpdateWidgetRequest_WithNullableFields(t *testing.T) {
	var cleared UpdateWidgetRequest
	if err := json.Unmarshal([]byte(`{"description": null}`), &cleared); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !cleared.Description.Set {
		t.Error("Expected Description.Set to be true when field is present with null")
	}
	if cleared.Description.Valid {
		t.Error("Expected Description.Valid to be false when value is null")
	}

	var untouched UpdateWidgetRequest
	if err := json.Unmarshal([]byte(`{"price": 9.5}`), &untouched); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if untouched.Description.Set {
		t.Error("Expected Description.Set to be false when field is absent")
	}
	if untouched.Price == nil || *untouched.Price != 9.5 {
		t.Errorf("Price = %v, want 9.5", untouched.Price)
	}

	var updated UpdateWidgetRequest
	if err := json.Unmarshal([]byte(`{"description": "blue"}`), &updated); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !updated.Description.Valid || updated.Description.Value != "blue" {
		t.Errorf("Description = %+v, want valid \"blue\"", updated.Description)
	}
}
