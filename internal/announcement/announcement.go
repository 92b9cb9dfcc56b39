// Package announcement decides which backend announcement, if any, the wallet
// shows for its version, language and platform.
package announcement

import (
	"slices"
	"strings"

	"github.com/blang/semver"
)

// Type classifies an announcement.
type Type string

const (
	TypeEmergency Type = "EMERGENCY"
	TypeOutage    Type = "OUTAGE"
	TypeOther     Type = "OTHER_ANNOUNCEMENT"
)

// Platform names as used in announcement URL maps.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

// FallbackLanguage is used when an announcement lacks the requested language.
const FallbackLanguage = "en"

// IDs of the announcements synthesized for outages.
const (
	BlockchainOutageID = "blockchain_status"
	OceanOutageID      = "ocean_status"
)

// Data is an announcement as delivered by the backend.
type Data struct {
	ID      string            `json:"id,omitempty"`
	Type    Type              `json:"type,omitempty"`
	Lang    map[string]string `json:"lang"`
	Version string            `json:"version"`
	URL     map[string]string `json:"url,omitempty"`
	Channel string            `json:"channel,omitempty"`
}

// Announcement is the resolved, displayable form of Data.
type Announcement struct {
	ID      string
	Type    Type
	Content string
	URL     string
}

// Query describes the wallet that is about to display an announcement.
type Query struct {
	Version  string
	Language string
	Platform string
	Hidden   []string
	Channel  string
}

// IsMobile reports whether platform enforces version ranges.
func IsMobile(platform string) bool {
	return platform == PlatformIOS || platform == PlatformAndroid
}

// Satisfies reports whether version lies in the range expression. Invalid
// versions or ranges never match.
func Satisfies(version, expr string) bool {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return false
	}
	r, err := semver.ParseRange(strings.TrimSpace(expr))
	if err != nil {
		return false
	}
	return r(v)
}

// FindForVersion returns the first announcement in list that applies to q.
// Entries whose ID is hidden are skipped. Version ranges are only enforced on
// mobile platforms. With q.Channel set only entries for that channel qualify,
// otherwise only entries without a channel do.
func FindForVersion(q Query, list []Data) (Announcement, bool) {
	for _, d := range list {
		if d.ID != "" && slices.Contains(q.Hidden, d.ID) {
			continue
		}
		if d.Channel != q.Channel {
			continue
		}
		if IsMobile(q.Platform) && !Satisfies(q.Version, d.Version) {
			continue
		}
		return resolve(d, q), true
	}
	return Announcement{}, false
}

// Status carries the wallet-side signals that outrank backend announcements.
type Status struct {
	// BlockchainDown is set when the node has not synced for a prolonged time.
	BlockchainDown bool
	// CustomProvider is set when the wallet talks to a user-configured endpoint.
	CustomProvider bool

	BlockchainOutage bool
	OceanOutage      bool
}

// Select picks the single announcement to display. Priority is the emergency
// built from BlockchainDown, the blockchain API outage, the ocean API outage,
// then the first applicable backend announcement in list order. A query for a
// specific channel bypasses the priority list.
func Select(q Query, list []Data, status Status) (Announcement, bool) {
	if q.Channel != "" {
		return FindForVersion(q, list)
	}

	if status.BlockchainDown {
		text := blockchainDownText
		if status.CustomProvider {
			text = customProviderText
		}
		return Announcement{Type: TypeEmergency, Content: localized(text, q.Language)}, true
	}
	if status.BlockchainOutage && !slices.Contains(q.Hidden, BlockchainOutageID) {
		return outage(BlockchainOutageID, blockchainOutageText, q.Language), true
	}
	if status.OceanOutage && !slices.Contains(q.Hidden, OceanOutageID) {
		return outage(OceanOutageID, oceanOutageText, q.Language), true
	}
	return FindForVersion(q, list)
}

var (
	blockchainDownText = map[string]string{
		"en": "The blockchain has not been synced for a while. Balances and transactions may be outdated.",
		"de": "Die Blockchain wurde seit einiger Zeit nicht synchronisiert. Guthaben und Transaktionen sind möglicherweise veraltet.",
	}
	customProviderText = map[string]string{
		"en": "We have detected issues with your custom endpoint that is affecting your connection. You are advised to check on the status of your custom endpoint provider",
		"de": "Wir haben Probleme mit deinem benutzerdefinierten Endpunkt festgestellt, die deine Verbindung beeinträchtigen. Wir empfehlen, den Status deines benutzerdefinierten Endpunktanbieters zu überprüfen.",
	}
	blockchainOutageText = map[string]string{
		"en": "We are currently investigating a syncing issue on the blockchain.",
		"de": "Wir untersuchen derzeit ein Synchronisierungsproblem der Blockchain.",
	}
	oceanOutageText = map[string]string{
		"en": "We are currently investigating connection issues on Ocean API.",
		"de": "Wir untersuchen derzeit Verbindungsprobleme der Ocean API.",
	}
)

func outage(id string, text map[string]string, language string) Announcement {
	return Announcement{
		ID:      id,
		Type:    TypeOutage,
		Content: localized(text, language),
	}
}

func resolve(d Data, q Query) Announcement {
	return Announcement{
		ID:      d.ID,
		Type:    d.Type,
		Content: localized(d.Lang, q.Language),
		URL:     d.URL[q.Platform],
	}
}

func localized(text map[string]string, language string) string {
	if s, ok := text[language]; ok {
		return s
	}
	return text[FallbackLanguage]
}
