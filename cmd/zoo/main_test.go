package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInputs(t *testing.T, animals, persons, foods, commands string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range map[string]string{
		"animals.txt":  animals,
		"persons.txt":  persons,
		"foods.txt":    foods,
		"commands.txt": commands,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	for _, name := range []string{"animals.txt", "persons.txt", "foods.txt", "commands.txt", "output.txt"} {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

func TestRun_MissingArguments_PrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"a", "b"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, usage+"\n", stdout.String())
}

func TestRun_MissingInput_AbortsWithoutLog(t *testing.T) {
	paths := writeInputs(t, "", "", "", "")
	require.NoError(t, os.Remove(paths[2]))
	var stdout, stderr bytes.Buffer

	code := run(paths, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "IO Error: "))
	_, err := os.Stat(paths[4])
	assert.True(t, os.IsNotExist(err), "no output file should be created")
}

func TestRun_FeedScenario(t *testing.T) {
	for _, backend := range []string{"memory", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			t.Setenv("ZOO_LEDGER_STORE", backend)
			paths := writeInputs(t,
				"Lion,Leo,5\n",
				"Personnel,Bob,P1\n",
				"Meat,30.0\n",
				"Feed Animal,P1,Leo,2\nList Food Stock\n",
			)
			var stdout, stderr bytes.Buffer

			code := run(paths, &stdout, &stderr)

			require.Equal(t, 0, code, stderr.String())
			data, err := os.ReadFile(paths[4])
			require.NoError(t, err)
			log := string(data)
			assert.Contains(t, log, "Bob attempts to feed Leo.\nLeo has been given 10.000 kgs of meat\n")
			assert.Contains(t, log, "Meat: 20.000 kgs\n")
		})
	}
}

func TestRun_WritesMetricsFile(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "zoo.prom")
	t.Setenv("ZOO_METRICS_FILE", metricsPath)
	paths := writeInputs(t, "Lion,Leo,5\n", "Visitor,Alice,V1\n", "Meat,5\n", "Feed Animal,V1,Leo,1\n")
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run(paths, &stdout, &stderr))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `zoo_command_errors_total{reason="unauthorized"} 1`)
}
