// Package catalog holds the predefined option lists for the assessment form.
//
// Role and tool catalogs depend on the employee's team: RolesFor and ToolsFor
// are pure functions of the team name and must be re-evaluated whenever the
// team changes (callers then reconcile tag sets so previously chosen values
// are not silently dropped).
package catalog

// Selection limits. Zero means unbounded.
const (
	MaxSkills     = 5
	MaxChallenges = 5
	MaxTools      = 0

	// MaxNotesLen caps the employee's free-text notes, in characters.
	MaxNotesLen = 500
)

// Team identifiers. Stored verbatim in Profile.Team.
const (
	TeamDesign     = "Design & Creatives"
	TeamContent    = "Content"
	TeamAccounts   = "Accounts"
	TeamStrategy   = "Strategy"
	TeamTech       = "Tech"
	TeamOperations = "Operations"
)

var teams = []string{
	TeamDesign,
	TeamContent,
	TeamAccounts,
	TeamStrategy,
	TeamTech,
	TeamOperations,
}

// rolesByTeam maps a team to its role catalog. A team absent from this map
// (including the empty team) has an empty role catalog.
var rolesByTeam = map[string][]string{
	TeamDesign:     {"Production Lead", "3D Animator", "AI Artist", "Lead AI Artist"},
	TeamContent:    {"Content Lead", "Copywriter", "Video Editor", "Social Media Manager"},
	TeamAccounts:   {"Account Manager", "Senior Account Manager", "Account Director"},
	TeamStrategy:   {"Strategist", "Strategy Lead"},
	TeamTech:       {"Developer", "Tech Lead"},
	TeamOperations: {"Producer", "Operations Manager"},
}

// baseTools is the tool catalog shared by every team.
var baseTools = []string{
	"ChatGPT",
	"MidJourney",
	"Runway",
	"Pika",
	"Veo",
	"Krea",
	"Project management tools",
	"Internal tools",
}

// extraToolsByTeam appends team-specific tools to the base catalog.
var extraToolsByTeam = map[string][]string{
	TeamDesign:     {"Figma AI", "Adobe Firefly"},
	TeamContent:    {"Descript", "ElevenLabs"},
	TeamStrategy:   {"Perplexity"},
	TeamTech:       {"GitHub Copilot", "Cursor"},
	TeamOperations: {"Zapier"},
}

var skills = []string{
	"AI Prompting",
	"Project Management",
	"Client Communication",
	"Time Management",
	"Leadership",
	"Creative Thinking",
	"Technical Skills",
	"Presentation / Deck Building",
}

var challenges = []string{
	"Too many tasks",
	"Tight deadlines",
	"Unclear requirements",
	"Tool knowledge gap",
	"Stress / burnout",
	"Client pressure",
	"Lack of focus",
}

var motivationalStyles = []string{
	"Inspirational",
	"Tactical / How-to",
	"Founder mindset",
	"Productivity hacks",
	"Direct & blunt",
}

var learningStyles = []string{
	"Bullet summaries",
	"Step-by-step",
	"Examples & use cases",
	"Analogies",
	"Mixed",
}

// Learning cadence values. Stored lowercase in Profile.Cadence.
const (
	CadenceWeekly   = "weekly"
	CadenceBiweekly = "bi-weekly"
)

var cadences = []string{CadenceWeekly, CadenceBiweekly}

// Teams returns the team catalog.
func Teams() []string { return clone(teams) }

// RolesFor returns the role catalog for the given team. An unknown or empty
// team yields an empty catalog, which in turn means no role is valid.
func RolesFor(team string) []string { return clone(rolesByTeam[team]) }

// ToolsFor returns the tool catalog for the given team: the shared base list
// plus any team-specific additions. An unknown or empty team yields just the
// base list.
func ToolsFor(team string) []string {
	out := make([]string, 0, len(baseTools)+len(extraToolsByTeam[team]))
	out = append(out, baseTools...)
	out = append(out, extraToolsByTeam[team]...)
	return out
}

// Skills returns the skill catalog (team-independent).
func Skills() []string { return clone(skills) }

// Challenges returns the challenge catalog (team-independent).
func Challenges() []string { return clone(challenges) }

// MotivationalStyles returns the motivation-style catalog.
func MotivationalStyles() []string { return clone(motivationalStyles) }

// LearningStyles returns the learning-style catalog.
func LearningStyles() []string { return clone(learningStyles) }

// Cadences returns the learning-cadence catalog.
func Cadences() []string { return clone(cadences) }

// ValidTeam reports whether team is in the team catalog. The empty team is
// valid: the form allows submission before a team is chosen.
func ValidTeam(team string) bool {
	return team == "" || contains(teams, team)
}

// ValidRole reports whether role belongs to the role catalog for team. The
// empty role is always valid; any non-empty role requires a team whose
// catalog contains it.
func ValidRole(team, role string) bool {
	return role == "" || contains(rolesByTeam[team], role)
}

// ValidCadence reports whether cadence is a known value or empty.
func ValidCadence(cadence string) bool {
	return cadence == "" || contains(cadences, cadence)
}

// ValidMotivationalStyle reports whether style is a known value or empty.
func ValidMotivationalStyle(style string) bool {
	return style == "" || contains(motivationalStyles, style)
}

// ValidLearningStyle reports whether style is a known value or empty.
func ValidLearningStyle(style string) bool {
	return style == "" || contains(learningStyles, style)
}

func clone(list []string) []string {
	return append([]string(nil), list...)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
