package semvercheck

import "testing"

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		require   bool
		valid     bool
		expectErr bool
		expected  string
	}{
		{name: "plain semver", value: "1.2.3", valid: true, expected: "1.2.3"},
		{name: "leading v", value: "v2.0.1", valid: true, expected: "2.0.1"},
		{name: "appveyor style", value: "1.0.42", require: true, valid: true, expected: "1.0.42"},
		{name: "azure date build number", value: "20240101.1", valid: true, expected: "20240101.1.0"},
		{name: "prerelease", value: "0.3.0-rc.1", require: true, valid: true, expected: "0.3.0-rc.1"},
		{name: "invalid tolerated", value: "nightly", valid: false},
		{name: "invalid required", value: "nightly", require: true, expectErr: true},
		{name: "empty tolerated", value: "  ", valid: false},
		{name: "empty required", value: "", require: true, expectErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res, err := Check(tc.value, tc.require)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Raw != tc.value {
				t.Fatalf("expected raw %q, got %q", tc.value, res.Raw)
			}
			if res.Valid != tc.valid {
				t.Fatalf("expected valid=%t, got %t (reason %q)", tc.valid, res.Valid, res.Reason)
			}
			if tc.valid && res.Version.String() != tc.expected {
				t.Fatalf("expected parsed %s, got %s", tc.expected, res.Version.String())
			}
			if !tc.valid && res.Reason == "" {
				t.Fatalf("expected a reason for invalid version")
			}
		})
	}
}
