package types

// GameStatus is the release lifecycle stage of a game
type GameStatus string

const (
	GameAnnounced GameStatus = "announced"
	GameAlpha     GameStatus = "alpha"
	GameBeta      GameStatus = "beta"
	GameReleased  GameStatus = "released"
	GameSunset    GameStatus = "sunset"
)

// GameStatuses lists every game status in lifecycle order
var GameStatuses = []GameStatus{GameAnnounced, GameAlpha, GameBeta, GameReleased, GameSunset}

// Valid reports whether s is a known game status
func (s GameStatus) Valid() bool {
	for _, known := range GameStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Game is a title managed by the content system.
// Slug is the key used by dataset and pipeline filters.
type Game struct {
	ID                    string     `json:"id"`
	Slug                  string     `json:"slug"`
	Name                  string     `json:"name"`
	Status                GameStatus `json:"status"`
	GameCompanyProviderID *string    `json:"gameCompanyProviderId,omitempty"`
	PlatformProviderIDs   []string   `json:"platformProviderIds,omitempty"`
	Genre                 *string    `json:"genre,omitempty"`
	Categories            []string   `json:"categories,omitempty"`
	Franchise             *string    `json:"franchise,omitempty"`
	SeriesNumber          *int       `json:"seriesNumber,omitempty"`
	Publisher             *string    `json:"publisher,omitempty"`
	WebsiteURL            *string    `json:"websiteUrl,omitempty"`
}

// GameInput is the payload of the createGame and updateGame mutations
type GameInput struct {
	Slug                  string     `json:"slug"`
	Name                  string     `json:"name"`
	Status                GameStatus `json:"status"`
	GameCompanyProviderID *string    `json:"gameCompanyProviderId"`
	PlatformProviderIDs   []string   `json:"platformProviderIds"`
	Genre                 *string    `json:"genre"`
	Categories            []string   `json:"categories"`
	Franchise             *string    `json:"franchise"`
	SeriesNumber          *int       `json:"seriesNumber"`
	Publisher             *string    `json:"publisher"`
	WebsiteURL            *string    `json:"websiteUrl"`
}

// TagType distinguishes the two game tag vocabularies
type TagType string

const (
	TagGenre    TagType = "genre"
	TagCategory TagType = "category"
)

// GameTag is one entry of the genre or category vocabulary
type GameTag struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	TagType     TagType `json:"tagType"`
}
