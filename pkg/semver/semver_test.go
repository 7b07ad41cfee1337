package semver

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"1.2.3", Version{Major: 1, Minor: 2, Patch: 3}, false},
		{"v1.0.0", Version{Major: 1, Minor: 0, Patch: 0}, false},
		{"2.0.0-rc.1", Version{Major: 2, Minor: 0, Patch: 0, Prerelease: "rc.1"}, false},
		{"1.2", Version{}, true},
		{"abc", Version{}, true},
		{"", Version{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if *got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, *got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"1.1.0", "1.0.9", 1},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0-rc.1", "1.0.0", -1},
		{"1.0.0", "1.0.0-rc.1", 1},
	}

	for _, tt := range tests {
		a, err := Parse(tt.a)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.a, err)
		}
		b, err := Parse(tt.b)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.b, err)
		}
		if got := a.Compare(b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompatible(t *testing.T) {
	a, _ := Parse("1.0.0")
	b, _ := Parse("1.9.3")
	c, _ := Parse("2.0.0")

	if !Compatible(a, b) {
		t.Error("Compatible(1.0.0, 1.9.3) = false, want true")
	}
	if Compatible(a, c) {
		t.Error("Compatible(1.0.0, 2.0.0) = true, want false")
	}
}

func TestString(t *testing.T) {
	v, err := Parse("v2.1.0-beta")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got := v.String(); got != "2.1.0-beta" {
		t.Errorf("String() = %q, want %q", got, "2.1.0-beta")
	}
}
