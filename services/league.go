// services/league.go - League tier classification
package services

// LeagueTier is a discrete XP-based rank bucket used for leaderboard
// grouping.
type LeagueTier string

const (
	LeagueBronze   LeagueTier = "Bronze"
	LeagueSilver   LeagueTier = "Silver"
	LeagueGold     LeagueTier = "Gold"
	LeagueSapphire LeagueTier = "Sapphire"
	LeagueRuby     LeagueTier = "Ruby"
	LeagueEmerald  LeagueTier = "Emerald"
	LeagueAmethyst LeagueTier = "Amethyst"
	LeaguePearl    LeagueTier = "Pearl"
	LeagueObsidian LeagueTier = "Obsidian"
	LeagueDiamond  LeagueTier = "Diamond"
)

// LeagueForXP maps a lifetime XP total to its league tier. It is evaluated
// on every read; the tier is never stored on the user row.
func LeagueForXP(totalXP int) LeagueTier {
	switch {
	case totalXP >= 50000:
		return LeagueDiamond
	case totalXP >= 30000:
		return LeagueObsidian
	case totalXP >= 20000:
		return LeaguePearl
	case totalXP >= 15000:
		return LeagueAmethyst
	case totalXP >= 10000:
		return LeagueEmerald
	case totalXP >= 5000:
		return LeagueRuby
	case totalXP >= 2500:
		return LeagueSapphire
	case totalXP >= 1000:
		return LeagueGold
	case totalXP >= 500:
		return LeagueSilver
	default:
		return LeagueBronze
	}
}
