package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fraud.rules.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	set, err := Load("")
	require.NoError(t, err)

	assert.EqualValues(t, DefaultAmountHighThreshold, set.AmountHighThreshold)
	assert.Equal(t, DefaultAmountHighImpact, set.AmountHighImpact)
	assert.Equal(t, DefaultSuspiciousDomains, set.SuspiciousDomains)
	assert.Equal(t, DefaultJitterMax, set.JitterMax)
	assert.Equal(t, DefaultBlockThreshold, set.BlockThreshold)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeRules(t, `{"amountHighThreshold": 10000, "suspiciousDomains": [".xyz"]}`)

	set, err := Load(path)
	require.NoError(t, err)

	assert.EqualValues(t, 10000, set.AmountHighThreshold)
	assert.Equal(t, []string{".xyz"}, set.SuspiciousDomains)
	// Untouched keys keep defaults
	assert.Equal(t, DefaultAmountHighImpact, set.AmountHighImpact)
	assert.Equal(t, DefaultSuspiciousDomainImpact, set.SuspiciousDomainImpact)
}

func TestLoad_JitterKey(t *testing.T) {
	path := writeRules(t, `{"jitter": 0.1}`)

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.1, set.JitterMax)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/fraud.rules.json")
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeRules(t, `{"amountHighThreshold": `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsOutOfRange(t *testing.T) {
	cases := []string{
		`{"amountHighImpact": 1.5}`,
		`{"suspiciousDomainImpact": -0.1}`,
		`{"jitter": 1.0}`,
		`{"blockThreshold": 0}`,
		`{"preferThreshold": 0.9}`, // above block threshold
	}
	for _, body := range cases {
		_, err := Load(writeRules(t, body))
		assert.Error(t, err, "body: %s", body)
	}
}

func TestDefaults_Isolated(t *testing.T) {
	a := Defaults()
	a.SuspiciousDomains[0] = ".changed"
	b := Defaults()
	assert.Equal(t, ".ru", b.SuspiciousDomains[0], "Defaults must not share the domain slice")
}
