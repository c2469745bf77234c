package monitor

import (
	"testing"

	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProcessCount(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr bool
	}{
		{name: "wc output", out: "212\n", want: 212},
		{name: "padded wc output", out: "     212\n", want: 212},
		{name: "first integer wins", out: "total 31 of 40", want: 31},
		{name: "zero", out: "0", want: 0},
		{name: "empty", out: "", wantErr: true},
		{name: "no digits", out: "ps: command not found", wantErr: true},
		{name: "overflow", out: "99999999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProcessCount(tt.out)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDiskPercent(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr bool
	}{
		{name: "df -P", out: dfOutput, want: 44},
		{name: "df -h header", out: "Filesystem Size Used Avail Use% Mounted on\n/dev/root 29G 12G 17G 41% /\n", want: 41},
		{name: "full disk", out: "/dev/sda1 10 10 0 100% /", want: 100},
		{name: "over 100", out: "/dev/sda1 10 15 0 150% /", wantErr: true},
		{name: "no percent", out: "Filesystem 1024-blocks Used\n/dev/sda1 100 50", wantErr: true},
		{name: "bare percent sign", out: "Use% only", wantErr: true},
		{name: "empty", out: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDiskPercent(tt.out)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopLines(t *testing.T) {
	t.Run("trims and caps", func(t *testing.T) {
		got := TopLines(topOutput, 3)
		assert.Equal(t, []string{
			"1234 postgres 12.5 204800 postgres",
			"987 root      4.1  65536 dockerd",
			"555 www-data  2.0  32768 nginx",
		}, got)
	})

	t.Run("fewer lines than cap", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, TopLines("a\n\n  b  \n", 5))
	})

	t.Run("empty output", func(t *testing.T) {
		assert.Empty(t, TopLines("", 5))
		assert.Empty(t, TopLines("\n \n", 5))
	})
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "short", summarize("  short \n"))

	long := summarize(string(make([]byte, 100)))
	assert.Len(t, long, 63)
}
