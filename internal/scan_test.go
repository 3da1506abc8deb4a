package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanner(t *testing.T) {
	assert := assert.New(t)

	listing := strings.Join([]string{
		"",
		"# Example Program",
		"start:",
		"    ldim 10, %r1      # Load 10 into r1",
		"",
		"   ",
		"    end               # End program",
	}, "\n")

	type line struct {
		no   int
		text string
	}

	var got []line
	sc := NewScanner(strings.NewReader(listing))
	for sc.Scan() {
		got = append(got, line{sc.LineNo(), sc.Text()})
	}
	assert.NoError(sc.Err())

	expected := []line{
		{3, "start:"},
		{4, "ldim 10, %r1"},
		{7, "end"},
	}
	assert.Equal(expected, got)
}

func TestScannerEmpty(t *testing.T) {
	assert := assert.New(t)

	sc := NewScanner(strings.NewReader("# only a comment\n\n"))
	assert.False(sc.Scan())
	assert.NoError(sc.Err())
}
