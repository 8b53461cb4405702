package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1235, true},
		{"12.344", 1234, true},
		{"-5", -500, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, c := range cases {
		got, err := ParseMoney(c.in)
		if c.ok && (err != nil || got.Cents != c.want) {
			t.Fatalf("ParseMoney(%q) = %d, %v; want %d", c.in, got.Cents, err, c.want)
		}
		if !c.ok && !IsValidation(err) {
			t.Fatalf("ParseMoney(%q) expected validation error, got %v", c.in, err)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if s := Cents(123456).String(); s != "1234.56" {
		t.Fatalf("got %q", s)
	}
	if s := Cents(-5).String(); s != "-0.05" {
		t.Fatalf("got %q", s)
	}
}

func TestMoneyJSON(t *testing.T) {
	var m Money
	if err := m.UnmarshalJSON([]byte(`"10.50"`)); err != nil || m.Cents != 1050 {
		t.Fatalf("quoted: %d %v", m.Cents, err)
	}
	if err := m.UnmarshalJSON([]byte(`7`)); err != nil || m.Cents != 700 {
		t.Fatalf("bare: %d %v", m.Cents, err)
	}
	b, _ := Cents(1050).MarshalJSON()
	if string(b) != "10.50" {
		t.Fatalf("marshal: %s", b)
	}
}
