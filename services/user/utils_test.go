package user

import "testing"

func TestVerifyPasswordComplexity(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Str0ng!pass", true},
		{"short1!A", true},
		{"sh0rt!A", false},       // too short
		{"alllower1!", false},    // no uppercase
		{"ALLUPPER1!", false},    // no lowercase
		{"NoNumbers!", false},    // no digit
		{"NoSymbols123", false},  // no symbol
		{"", false},
	}
	for _, c := range cases {
		err := VerifyPasswordComplexity(c.password)
		if c.ok && err != nil {
			t.Errorf("VerifyPasswordComplexity(%q): unexpected error %v", c.password, err)
		}
		if !c.ok && err == nil {
			t.Errorf("VerifyPasswordComplexity(%q): expected rejection", c.password)
		}
	}
}
