package announcement

import "slices"

// Stage is the rollout stage of a feature flag.
type Stage string

const (
	StageAlpha  Stage = "alpha"
	StageBeta   Stage = "beta"
	StagePublic Stage = "public"
)

// FeatureFlag is a backend-controlled feature toggle.
type FeatureFlag struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Stage       Stage    `json:"stage"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Networks    []string `json:"networks"`
	Platforms   []string `json:"platforms"`
	App         string   `json:"app,omitempty"`
}

// FlagQuery describes the wallet asking for a feature.
type FlagQuery struct {
	Version  string
	Network  string
	Platform string
	// Debug enables flags in the alpha stage, as debug environments do.
	Debug bool
	// EnabledBeta lists the IDs of beta features the user opted into.
	EnabledBeta []string
}

// Enabled reports whether the flag applies to q.
func (f FeatureFlag) Enabled(q FlagQuery) bool {
	if !slices.Contains(f.Networks, q.Network) || !slices.Contains(f.Platforms, q.Platform) {
		return false
	}
	if IsMobile(q.Platform) && !Satisfies(q.Version, f.Version) {
		return false
	}
	switch f.Stage {
	case StagePublic:
		return true
	case StageBeta:
		return slices.Contains(q.EnabledBeta, f.ID)
	case StageAlpha:
		return q.Debug
	default:
		return false
	}
}

// EnabledFlags returns the IDs of all flags in list enabled for q.
func EnabledFlags(q FlagQuery, list []FeatureFlag) []string {
	var ids []string
	for _, f := range list {
		if f.Enabled(q) {
			ids = append(ids, f.ID)
		}
	}
	return ids
}
