package verifier_test

import (
	"testing"

	. "github.com/mini-maxit/grader/internal/stages/verifier"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{"json array compacted", "[0, 1]", "[0,1]"},
		{"json object keys sorted", `{"b": 2, "a": [1, 2]}`, `{"a":[1,2],"b":2}`},
		{"json number", " 42 \n", "42"},
		{"json float keeps fraction", "2.50", "2.5"},
		{"json integral float", "1.0", "1.0"},
		{"json exponent", "1e20", "1e+20"},
		{"json string", `"abc"`, `"abc"`},
		{"json bool", "true", "true"},
		{"comma separated", "1, 2, 3", "[1,2,3]"},
		{"space separated", "1 2 3", "[1,2,3]"},
		{"trailing comma", "1, 2,", "[1,2]"},
		{"mixed tokens", "1 2.5 x", `[1,2.5,"x"]`},
		{"quoted tokens", `'a', "b"`, `["a","b"]`},
		{"multiline without separators", "1\n2", "1\n2"},
		{"single word", "hello", "hello"},
		{"single token with trailing comma", "1,", "1,"},
		{"multi-word string is split", "hello world", `["hello","world"]`},
		{"empty", "   \n", ""},
		{"json non-finite literals", "[NaN, Infinity, -Infinity]", "[NaN,Infinity,-Infinity]"},
		{"json overflowing float", "1E400", "Infinity"},
		{"json overflowing negative float", "[-1e999, 1]", "[-Infinity,1]"},
		{"nan token", "nan 1", "[NaN,1]"},
		{"inf token", "inf, 2", "[Infinity,2]"},
		{"overflowing token", "1e999 -1e999", "[Infinity,-Infinity]"},
		{"hex token stays a string", "0x10 1", `["0x10",1]`},
		{"lowercase literal is not json", "[nan]", "[nan]"},
		{"leading zero is not json", "01", "01"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Normalize(c.in)
			if got != c.out {
				t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.out)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"[0, 1]",
		"1, 2, 3,",
		`{"z": [1, 2.0], "a": null}`,
		"1 2.5 x",
		"hello",
		"0.0001 1e-05",
		"nan 1",
		"inf, 2",
		"-inf 3",
		"1e999",
		"[NaN, Infinity]",
		`{"s": "a \"quoted\" \\ value", "n": -0.0}`,
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize is not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCompareOutput(t *testing.T) {
	v := NewVerifier()

	equal := [][2]string{
		{"[0, 1]", "[0,1]"},
		{"0 1", "[0,1]"},
		{"0, 1,\n", "[0, 1]"},
		{"  42\n", "42"},
		{`{"b":1,"a":2}`, `{"a": 2, "b": 1}`},
		{"true", "true"},
		{"[ Infinity, 1 ]", "[Infinity,1]"},
		{"inf 1", "[Infinity,1]"},
		{"1e999", "Infinity"},
	}
	for _, pair := range equal {
		if !v.CompareOutput(pair[0], pair[1]) {
			t.Fatalf("expected %q and %q to match", pair[0], pair[1])
		}
	}

	different := [][2]string{
		{"[0, 2]", "[0,1]"},
		{"1", "1.0"},
		{"[1,0]", "[0,1]"},
		{"", "0"},
		{"Infinity", "-Infinity"},
		{"NaN", "0"},
	}
	for _, pair := range different {
		if v.CompareOutput(pair[0], pair[1]) {
			t.Fatalf("expected %q and %q to differ", pair[0], pair[1])
		}
	}
}
