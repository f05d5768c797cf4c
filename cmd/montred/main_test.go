package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the app and returns its stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"montred"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		bits    int
		want    int64
		wantErr bool
	}{
		{"12345678", 32, 12345678, false},
		{"-65536", 32, -65536, false},
		{"0xd01", 16, 3329, false},
		{"0b101", 16, 5, false},
		{"109_084_671", 32, 109084671, false},
		{"32768", 16, 0, true},
		{"-32769", 16, 0, true},
		{"2147483648", 32, 0, true},
		{"q", 16, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseInt(tc.in, tc.bits)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReduceCommand(t *testing.T) {
	out, _, err := run(t, "reduce", "--", "0", "65536", "-65536", "12345678", "-9876543")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n-1\n-1207\n-1799\n", out)
}

func TestReduceCommandWarnsOutsideDomain(t *testing.T) {
	out, logs, err := run(t, "reduce", "1000000000")
	require.NoError(t, err)
	assert.Equal(t, "15961\n", out)
	assert.Contains(t, logs, "result may leave")
}

func TestConversionCommands(t *testing.T) {
	out, _, err := run(t, "tomont", "--", "1", "2", "-1")
	require.NoError(t, err)
	assert.Equal(t, "-1044\n1241\n1044\n", out)

	out, _, err = run(t, "frommont", "--", "2285", "-1044", "1")
	require.NoError(t, err)
	assert.Equal(t, "1\n1\n169\n", out)
}

func TestMulCommands(t *testing.T) {
	out, _, err := run(t, "mul", "1234", "2345")
	require.NoError(t, err)
	assert.Equal(t, "829\n", out)

	out, _, err = run(t, "mul", "3329", "5")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, _, err = run(t, "fieldmul", "2285", "2285")
	require.NoError(t, err)
	assert.Equal(t, "-1044\n", out)

	_, _, err = run(t, "mul", "1")
	assert.EqualError(t, err, "mul: expected 2 arguments, got 1")

	_, _, err = run(t, "mul", "1", "40000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid 16-bit integer "40000"`)
}

func TestTraceCommand(t *testing.T) {
	out, _, err := run(t, "trace", "1000000000")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[5], "15961")
}

func TestParamsCommand(t *testing.T) {
	out, _, err := run(t, "params")
	require.NoError(t, err)
	assert.Contains(t, out, "Q        = 3329\n")
	assert.Contains(t, out, "QInv     = -3327")
	assert.Contains(t, out, "RSquared = 1353")
	assert.Contains(t, out, "Mont     = 2285")
}

func TestVerifyCommand(t *testing.T) {
	out, logs, err := run(t, "--log-format", "json", "verify", "--op", "reduce", "--lo", "-4096", "--hi", "4096", "--workers", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "reduce ok: 8192 checks over [-4096, 4096)"), out)
	assert.Contains(t, logs, `"message":"sweep passed"`)

	out, _, err = run(t, "verify", "--op", "roundtrip")
	require.NoError(t, err)
	assert.Contains(t, out, "roundtrip ok: 65536 checks")
}

func TestVerifyCommandDebugLogging(t *testing.T) {
	out, logs, err := run(t, "--loglevel", "debug", "--log-format", "json",
		"verify", "--op", "reduce", "--lo", "0", "--hi", "1000000", "--workers", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "reduce ok: 1000000 checks")
	assert.Equal(t, 8, strings.Count(logs, `"message":"shard done"`))
}

func TestVerifyCommandErrors(t *testing.T) {
	_, _, err := run(t, "verify", "--op", "ntt")
	assert.EqualError(t, err, `unknown --op "ntt"`)

	_, _, err = run(t, "verify", "--lo", "0", "--hi", "10")
	assert.EqualError(t, err, "--lo and --hi require a single --op")

	_, logs, err := run(t, "--loglevel", "error", "verify", "--op", "reduce", "--lo", "2147418112", "--hi", "2147483648")
	require.Error(t, err)
	assert.Contains(t, logs, "sweep failed")
	assert.Contains(t, errors.Cause(err).Error(), "reduce(")
}
