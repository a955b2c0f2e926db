/*package cols formats and parses the whitespace separated numeric columns
that flrwcalc writes to stdout and reads from stdin. Lines starting with
'#' are comments, as are trailing '#' sections of data lines.*/
package cols

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// CommentString builds the header comment naming each output column, e.g.
// "# Column contents: z(0) DC/Mpc(1)".
func CommentString(names []string) string {
	tokens := make([]string, len(names)+1)
	tokens[0] = "# Column contents:"
	for i := range names {
		tokens[i+1] = fmt.Sprintf("%s(%d)", names[i], i)
	}
	return strings.Join(tokens, " ")
}

// Format renders the given columns as space separated lines. Every value
// is printed with prec significant digits and columns are right-aligned.
// All columns must have the same height.
func Format(cols [][]float64, prec int) []string {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return []string{}
	}

	height := len(cols[0])
	formatted := make([][]string, len(cols))
	for i := range cols {
		if len(cols[i]) != height {
			panic("Columns of unequal height.")
		}
		formatted[i] = formatCol(cols[i], prec)
	}

	lines := make([]string, height)
	tokens := make([]string, len(cols))
	for i := 0; i < height; i++ {
		for j := range formatted {
			tokens[j] = formatted[j][i]
		}
		lines[i] = strings.Join(tokens, " ")
	}

	return lines
}

func formatCol(col []float64, prec int) []string {
	width := 0
	for i := range col {
		n := len(fmt.Sprintf("%.*g", prec, col[i]))
		if n > width {
			width = n
		}
	}

	out := make([]string, len(col))
	for i := range col {
		out[i] = fmt.Sprintf("%*.*g", width, prec, col[i])
	}

	return out
}

// Parse reads the requested zero-indexed columns out of a block of text.
// Comments and blank lines are skipped, and every data line must have the
// same number of columns as the first one.
func Parse(data []byte, colIdxs []int) ([][]float64, error) {
	lines, nComm := split(data, '\n', '#')
	lines = uncomment(lines, '#', nComm)
	lines = trim(lines, ' ')
	return parse(lines, ' ', colIdxs)
}

// split splits a byte slice at each separator. Faster than bytes.Split()
// because slicing is used instead of allocations and because only one
// separator is used.
//
// Some of the counting needed by uncomment is done here in the same pass.
func split(data []byte, sep, comm byte) (lines [][]byte, nComm int) {
	n := 0
	for _, c := range data {
		if c == sep {
			n++
		}
		if c == comm {
			nComm++
		}
	}

	tokens := make([][]byte, n+1)
	for j := 0; j < n; j++ {
		idx := bytes.IndexByte(data, sep)
		tokens[j] = data[:idx]
		data = data[idx+1:]
	}
	tokens[n] = data

	return tokens, nComm
}

// uncomment removes comments in the form of "data # comment". Optimized
// for the common case where comments are rare and at the start of the
// file.
func uncomment(lines [][]byte, comm byte, nComm int) [][]byte {
	if nComm == 0 {
		return lines
	}

	for i, line := range lines {
		commentStart := bytes.IndexByte(line, comm)
		if commentStart == -1 {
			continue
		}

		lines[i] = line[:commentStart]

		n := 1
		for _, c := range line[commentStart+1:] {
			if c == comm {
				n++
			}
		}

		nComm -= n
		if nComm == 0 {
			return lines
		}
	}

	return lines
}

// trim removes empty lines.
func trim(lines [][]byte, sep byte) [][]byte {
	j := 0

LineLoop:
	for i, line := range lines {
		for _, c := range line {
			if c != sep {
				lines[j] = lines[i]
				j++
				continue LineLoop
			}
		}
	}

	return lines[:j]
}

func parse(lines [][]byte, sep byte, colIdxs []int) ([][]float64, error) {
	cols := make([][]float64, len(colIdxs))
	for i := range cols {
		cols[i] = make([]float64, len(lines))
	}

	if len(lines) == 0 {
		return cols, nil
	}

	width := len(bytes.Fields(lines[0]))
	for _, idx := range colIdxs {
		if idx >= width {
			return nil, fmt.Errorf(
				"I was asked to read column %d, but the input only has "+
					"%d columns.", idx, width,
			)
		}
	}

	var err error
	buf := make([][]byte, 0, width)
	for i, line := range lines {
		words := fields(line, sep, buf)
		if len(words) != width {
			return nil, fmt.Errorf(
				"Data line %d has %d columns, but the first data line "+
					"has %d.", i+1, len(words), width,
			)
		}

		for j := range colIdxs {
			word := string(words[colIdxs[j]])
			cols[j][i], err = strconv.ParseFloat(word, 64)
			if err != nil {
				return nil, fmt.Errorf(
					"Column %d of data line %d is '%s', which is not a "+
						"number.", colIdxs[j], i+1, word,
				)
			}
		}
	}

	return cols, nil
}

// fields is a buffered analog to the standard library's bytes.Fields()
// function. The returned slices alias both data and buf's backing array.
func fields(data []byte, sep byte, buf [][]byte) [][]byte {
	out := buf[:0]
	fieldStart := -1

	for i := range data {
		if fieldStart < 0 && data[i] != sep {
			fieldStart = i
		} else if fieldStart >= 0 && data[i] == sep {
			out = append(out, data[fieldStart:i])
			fieldStart = -1
		}
	}
	if fieldStart >= 0 {
		out = append(out, data[fieldStart:])
	}

	return out
}
