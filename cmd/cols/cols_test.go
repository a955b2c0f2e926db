package cols

import (
	"strings"
	"testing"
)

func TestCommentString(t *testing.T) {
	tests := []struct {
		names []string
		out   string
	}{
		{[]string{}, "# Column contents:"},
		{[]string{"z"}, "# Column contents: z(0)"},
		{[]string{"z", "DC/Mpc"}, "# Column contents: z(0) DC/Mpc(1)"},
		{[]string{"z", "DC/Mpc", "DL/Mpc"},
			"# Column contents: z(0) DC/Mpc(1) DL/Mpc(2)"},
	}

	for i, test := range tests {
		out := CommentString(test.names)
		if out != test.out {
			t.Errorf("%d) Expected '%s', got '%s'.", i, test.out, out)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		cols  [][]float64
		prec  int
		lines []string
	}{
		{[][]float64{}, 8, []string{}},
		{[][]float64{{}}, 8, []string{}},
		{[][]float64{{0.5, 1, 2}}, 8, []string{"0.5", "  1", "  2"}},
		{[][]float64{{0.5, 1}, {3364.5091, 6729.0182}}, 8,
			[]string{"0.5 3364.5091", "  1 6729.0182"}},
		{[][]float64{{3364.5091}}, 3, []string{"3.36e+03"}},
	}

	for i, test := range tests {
		lines := Format(test.cols, test.prec)
		if len(lines) != len(test.lines) {
			t.Errorf("%d) Expected %d lines, got %d: %v",
				i, len(test.lines), len(lines), lines)
			continue
		}
		for j := range lines {
			if lines[j] != test.lines[j] {
				t.Errorf("%d) Expected line %d to be '%s', got '%s'.",
					i, j, test.lines[j], lines[j])
			}
		}
	}
}

func TestFormatPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Format() did not panic on columns of unequal height.")
		}
	}()
	Format([][]float64{{1, 2}, {1}}, 8)
}

func floatsEq(xs, ys []float64) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if xs[i] != ys[i] {
			return false
		}
	}
	return true
}

func TestParse(t *testing.T) {
	data := []byte(`# Redshifts and weights.
0.5 10

1 20 # an inline comment
2 30
`)

	cols, err := Parse(data, []int{0, 1})
	if err != nil {
		t.Fatalf("Parse() returned the error '%s'.", err.Error())
	}
	if len(cols) != 2 {
		t.Fatalf("Parse() returned %d columns, not 2.", len(cols))
	}
	if !floatsEq(cols[0], []float64{0.5, 1, 2}) {
		t.Errorf("Expected column 0 = [0.5 1 2], got %v", cols[0])
	}
	if !floatsEq(cols[1], []float64{10, 20, 30}) {
		t.Errorf("Expected column 1 = [10 20 30], got %v", cols[1])
	}

	cols, err = Parse([]byte(""), []int{0})
	if err != nil {
		t.Fatalf("Parse() of empty input returned the error '%s'.",
			err.Error())
	}
	if len(cols) != 1 || len(cols[0]) != 0 {
		t.Errorf("Parse() of empty input returned %v.", cols)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		data    string
		colIdxs []int
		substr  string
	}{
		{"0.5 10\n1 20\n", []int{2}, "column 2"},
		{"0.5 10\n1\n", []int{0}, "Data line 2"},
		{"0.5 x\n1 20\n", []int{0, 1}, "not a number"},
	}

	for i, test := range tests {
		_, err := Parse([]byte(test.data), test.colIdxs)
		if err == nil {
			t.Errorf("%d) Parse() did not return an error.", i)
		} else if !strings.Contains(err.Error(), test.substr) {
			t.Errorf("%d) Expected an error mentioning '%s', got '%s'.",
				i, test.substr, err.Error())
		}
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		line string
		out  []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"1", []string{"1"}},
		{" 1 ", []string{"1"}},
		{"0.5 10", []string{"0.5", "10"}},
		{"  0.5   10  20 ", []string{"0.5", "10", "20"}},
	}

	buf := make([][]byte, 0, 8)
	for i, test := range tests {
		words := fields([]byte(test.line), ' ', buf)
		if len(words) != len(test.out) {
			t.Errorf("%d) fields('%s') returned %d words, not %d.",
				i, test.line, len(words), len(test.out))
			continue
		}
		for j := range words {
			if string(words[j]) != test.out[j] {
				t.Errorf("%d) Expected word %d to be '%s', got '%s'.",
					i, j, test.out[j], string(words[j]))
			}
		}
	}
}
