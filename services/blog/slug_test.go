package blog

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Mindfulness & Sleep: 5 Tips!  ", "mindfulness-sleep-5-tips"},
		{"불안할 때 해보는 호흡법", "불안할-때-해보는-호흡법"},
		{"---", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.title); got != c.expected {
			t.Errorf("Slugify(%q): expected %q, got %q", c.title, c.expected, got)
		}
	}
}
