package version

import (
	"fmt"
	"testing"
)

func TestCompareBasics(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "2.0", -1},
		{"2.0", "1.0", 1},
		{"1.0.0", "1.0", 1},
		{"1.0", "1.0.0", -1},
		{"1.0a", "1.0b", -1},
		{"1.0", "1.0a", -1},
		{"", "", 0},
		{"", "1.0", -1},
		{"1.0", "", 1},
		{"1.0.1", "1.0.1", 0},
		{"1.5.0", "1.5", 1},
		{"010", "10", 0},
		{"2.50", "2.5", 1},
		{"fc4", "fc.4", 0},
		{"FC5", "fc4", -1},
		{"1b.fc17", "1b.fc17", 0},
		// '~' is treated as an ordinary non-alphanumeric separator per
		// §4.4; it is not given RPM's later tilde-as-prerelease meaning.
		{"1.0~rc1", "1.0", 1},
	}

	for _, tC := range testCases {
		t.Run(fmt.Sprintf("%s_vs_%s", tC.a, tC.b), func(t *testing.T) {
			got := Compare(tC.a, tC.b)
			if got != tC.want {
				t.Fatalf("Compare(%q, %q) = %d, want %d", tC.a, tC.b, got, tC.want)
			}
		})
	}
}

func TestCompareIsAntisymmetric(t *testing.T) {
	pairs := [][2]string{
		{"1.0", "2.0"},
		{"1.0a", "1.0"},
		{"fc4", "fc5"},
		{"1.2.3", "1.2.3"},
		{"", "1"},
	}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if Compare(a, b) != -1*Compare(b, a) {
			t.Fatalf("Compare is not antisymmetric for a=%q, b=%q", a, b)
		}
	}
}

func TestCompareIsReflexive(t *testing.T) {
	for _, v := range []string{"1.0", "", "fc4", "2.0.0-rc1"} {
		if Compare(v, v) != 0 {
			t.Fatalf("Compare(%q, %q) != 0", v, v)
		}
	}
}
