package announcement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Data {
	return []Data{
		{
			ID:      "old",
			Lang:    map[string]string{"en": "old release", "de": "alte Version"},
			Version: "<1.0.0",
		},
		{
			ID:      "current",
			Lang:    map[string]string{"en": "current release", "de": "aktuelle Version"},
			Version: ">=1.0.0 <2.0.0",
			URL:     map[string]string{"ios": "https://ios.example", "android": "https://android.example"},
		},
		{
			ID:      "beta",
			Lang:    map[string]string{"en": "beta channel"},
			Version: ">=1.0.0",
			Channel: "beta",
		},
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		version string
		expr    string
		want    bool
	}{
		{"1.2.3", ">=1.0.0", true},
		{"1.2.3", ">=1.0.0 <1.2.0", false},
		{"1.2.3", "<1.0.0 || >=1.2.0", true},
		{"1.2", ">=1.0.0", true},
		{"1.2.3", "not a range", false},
		{"garbage", ">=1.0.0", false},
		{"1.2.3", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.version+" "+tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, Satisfies(tt.version, tt.expr))
		})
	}
}

func TestFindForVersion(t *testing.T) {
	got, ok := FindForVersion(Query{Version: "1.5.0", Language: "de", Platform: PlatformIOS}, sample())
	require.True(t, ok)
	assert.Equal(t, "current", got.ID)
	assert.Equal(t, "aktuelle Version", got.Content)
	assert.Equal(t, "https://ios.example", got.URL)

	got, ok = FindForVersion(Query{Version: "0.9.0", Language: "de", Platform: PlatformAndroid}, sample())
	require.True(t, ok)
	assert.Equal(t, "old", got.ID)
}

func TestFindForVersionLanguageFallback(t *testing.T) {
	got, ok := FindForVersion(Query{Version: "1.5.0", Language: "fr", Platform: PlatformIOS}, sample())
	require.True(t, ok)
	assert.Equal(t, "current release", got.Content)
}

func TestFindForVersionIgnoresRangeOffMobile(t *testing.T) {
	got, ok := FindForVersion(Query{Version: "9.9.9", Language: "en", Platform: PlatformWeb}, sample())
	require.True(t, ok)
	assert.Equal(t, "old", got.ID)
	assert.Empty(t, got.URL)
}

func TestFindForVersionHidden(t *testing.T) {
	q := Query{Version: "1.5.0", Language: "en", Platform: PlatformIOS, Hidden: []string{"current"}}
	_, ok := FindForVersion(q, sample())
	assert.False(t, ok)
}

func TestFindForVersionChannel(t *testing.T) {
	got, ok := FindForVersion(Query{Version: "3.0.0", Language: "en", Platform: PlatformIOS, Channel: "beta"}, sample())
	require.True(t, ok)
	assert.Equal(t, "beta", got.ID)

	_, ok = FindForVersion(Query{Version: "3.0.0", Language: "en", Platform: PlatformIOS}, sample())
	assert.False(t, ok)
}

func TestFindForVersionInvalidRange(t *testing.T) {
	list := []Data{{ID: "broken", Lang: map[string]string{"en": "x"}, Version: "~~1"}}
	_, ok := FindForVersion(Query{Version: "1.0.0", Language: "en", Platform: PlatformIOS}, list)
	assert.False(t, ok)
}

func TestFindForVersionEmpty(t *testing.T) {
	_, ok := FindForVersion(Query{Version: "1.0.0"}, nil)
	assert.False(t, ok)
}

// ============================================================================
// Select
// ============================================================================

func withEmergency() []Data {
	list := sample()
	return append(list, Data{
		ID:      "emergency",
		Type:    TypeEmergency,
		Lang:    map[string]string{"en": "stop"},
		Version: ">=0.0.0",
	})
}

func TestSelectPriority(t *testing.T) {
	q := Query{Version: "1.5.0", Language: "en", Platform: PlatformIOS}

	got, ok := Select(q, sample(), Status{BlockchainDown: true, BlockchainOutage: true, OceanOutage: true})
	require.True(t, ok)
	assert.Equal(t, TypeEmergency, got.Type)
	assert.Contains(t, got.Content, "not been synced")

	got, ok = Select(q, sample(), Status{BlockchainDown: true, CustomProvider: true})
	require.True(t, ok)
	assert.Equal(t, TypeEmergency, got.Type)
	assert.Contains(t, got.Content, "custom endpoint")

	got, ok = Select(q, sample(), Status{BlockchainOutage: true, OceanOutage: true})
	require.True(t, ok)
	assert.Equal(t, BlockchainOutageID, got.ID)
	assert.Equal(t, TypeOutage, got.Type)

	got, ok = Select(q, sample(), Status{OceanOutage: true})
	require.True(t, ok)
	assert.Equal(t, OceanOutageID, got.ID)

	got, ok = Select(q, sample(), Status{})
	require.True(t, ok)
	assert.Equal(t, "current", got.ID)
}

func TestSelectKeepsBackendOrder(t *testing.T) {
	list := []Data{
		{ID: "general", Type: TypeOther, Lang: map[string]string{"en": "news"}, Version: ">=0.0.0"},
		{ID: "emerg", Type: TypeEmergency, Lang: map[string]string{"en": "stop"}, Version: ">=0.0.0"},
	}
	q := Query{Version: "1.5.0", Language: "en", Platform: PlatformIOS}

	got, ok := Select(q, list, Status{})
	require.True(t, ok)
	assert.Equal(t, "general", got.ID)

	q.Hidden = []string{"general"}
	got, ok = Select(q, list, Status{})
	require.True(t, ok)
	assert.Equal(t, "emerg", got.ID)
}

func TestSelectOutageOutranksBackendEmergency(t *testing.T) {
	q := Query{Version: "1.5.0", Language: "en", Platform: PlatformIOS}
	got, ok := Select(q, withEmergency(), Status{OceanOutage: true})
	require.True(t, ok)
	assert.Equal(t, OceanOutageID, got.ID)
}

func TestSelectHiddenOutage(t *testing.T) {
	q := Query{Version: "1.5.0", Language: "de", Platform: PlatformIOS, Hidden: []string{BlockchainOutageID}}
	got, ok := Select(q, sample(), Status{BlockchainOutage: true, OceanOutage: true})
	require.True(t, ok)
	assert.Equal(t, OceanOutageID, got.ID)
	assert.Contains(t, got.Content, "Ocean API")
}

func TestSelectChannelBypassesPriority(t *testing.T) {
	q := Query{Version: "1.5.0", Language: "en", Platform: PlatformIOS, Channel: "beta"}
	got, ok := Select(q, withEmergency(), Status{BlockchainOutage: true})
	require.True(t, ok)
	assert.Equal(t, "beta", got.ID)
}

// ============================================================================
// Feature flags
// ============================================================================

func TestFeatureFlagEnabled(t *testing.T) {
	flag := FeatureFlag{
		ID:        "staking",
		Stage:     StagePublic,
		Version:   ">=1.2.0",
		Networks:  []string{"MainNet"},
		Platforms: []string{PlatformIOS, PlatformWeb},
	}

	assert.True(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "MainNet", Platform: PlatformIOS}))
	assert.False(t, flag.Enabled(FlagQuery{Version: "1.1.0", Network: "MainNet", Platform: PlatformIOS}))
	assert.True(t, flag.Enabled(FlagQuery{Version: "1.1.0", Network: "MainNet", Platform: PlatformWeb}))
	assert.False(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "TestNet", Platform: PlatformIOS}))
	assert.False(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "MainNet", Platform: PlatformAndroid}))

	flag.Stage = StageBeta
	assert.False(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "MainNet", Platform: PlatformIOS}))
	assert.False(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "MainNet", Platform: PlatformIOS, EnabledBeta: []string{"lock"}}))
	assert.True(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "MainNet", Platform: PlatformIOS, EnabledBeta: []string{"staking"}}))
	assert.False(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "MainNet", Platform: PlatformIOS, Debug: true}))

	flag.Stage = StageAlpha
	assert.False(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "MainNet", Platform: PlatformIOS, EnabledBeta: []string{"staking"}}))
	assert.True(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "MainNet", Platform: PlatformIOS, Debug: true}))

	flag.Stage = "unknown"
	assert.False(t, flag.Enabled(FlagQuery{Version: "1.3.0", Network: "MainNet", Platform: PlatformIOS, Debug: true}))
}

func TestEnabledFlags(t *testing.T) {
	flags := []FeatureFlag{
		{ID: "a", Stage: StagePublic, Version: ">=0.0.0", Networks: []string{"MainNet"}, Platforms: []string{PlatformWeb}},
		{ID: "b", Stage: StageAlpha, Version: ">=0.0.0", Networks: []string{"MainNet"}, Platforms: []string{PlatformWeb}},
	}
	assert.Equal(t, []string{"a"}, EnabledFlags(FlagQuery{Version: "1.0.0", Network: "MainNet", Platform: PlatformWeb}, flags))
	assert.Equal(t, []string{"a", "b"}, EnabledFlags(FlagQuery{Version: "1.0.0", Network: "MainNet", Platform: PlatformWeb, Debug: true}, flags))
	assert.Nil(t, EnabledFlags(FlagQuery{Network: "TestNet", Platform: PlatformWeb}, flags))
}
