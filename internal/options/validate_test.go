package options

import "testing"

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantErr string
	}{
		{name: "exactly one source", sources: []bool{true, false, false}},
		{name: "no sources", sources: []bool{false, false}, wantErr: "no source"},
		{name: "multiple sources", sources: []bool{true, true}, wantErr: "multiple sources"},
		{name: "empty list", sources: nil, wantErr: "no source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("no source", "multiple sources", tt.sources...)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
