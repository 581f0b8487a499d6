package player

import (
	"fmt"

	"gorm.io/gorm"
)

// Position is one of the five canonical roles a player can queue for.
type Position string

const (
	PositionTop     Position = "top"
	PositionJungle  Position = "jungle"
	PositionMid     Position = "mid"
	PositionADC     Position = "adc"
	PositionSupport Position = "support"
)

// Positions lists every canonical position in declaration order. Team
// formation iterates this order when it has to fall back to an unclaimed
// position.
var Positions = []Position{PositionTop, PositionJungle, PositionMid, PositionADC, PositionSupport}

// Tier is an ordinal skill rank. Higher ordinal = stronger.
type Tier string

const (
	TierIron        Tier = "iron"
	TierBronze      Tier = "bronze"
	TierSilver      Tier = "silver"
	TierGold        Tier = "gold"
	TierPlatinum    Tier = "platinum"
	TierEmerald     Tier = "emerald"
	TierDiamond     Tier = "diamond"
	TierMaster      Tier = "master"
	TierGrandmaster Tier = "grandmaster"
	TierChallenger  Tier = "challenger"
)

// Tiers lists every tier from weakest to strongest.
var Tiers = []Tier{
	TierIron, TierBronze, TierSilver, TierGold, TierPlatinum,
	TierEmerald, TierDiamond, TierMaster, TierGrandmaster, TierChallenger,
}

// Rank returns the ordinal value of the tier, or -1 for an unknown tier.
func (t Tier) Rank() int {
	for i, tier := range Tiers {
		if tier == t {
			return i
		}
	}
	return -1
}

// Outranks reports whether t is a strictly stronger tier than other.
func (t Tier) Outranks(other Tier) bool {
	return t.Rank() > other.Rank()
}

// IsValid reports whether the tier is one of the known tiers.
func (t Tier) IsValid() bool {
	return t.Rank() >= 0
}

// IsValid reports whether the position is one of the canonical positions.
func (p Position) IsValid() bool {
	for _, pos := range Positions {
		if pos == p {
			return true
		}
	}
	return false
}

// Player is a registered scrim participant with a main role declaration and
// up to two optional secondary roles.
type Player struct {
	gorm.Model
	Name         string   `json:"name" gorm:"uniqueIndex;not null"`
	MainPosition Position `json:"main_position" gorm:"not null"`
	MainTier     Tier     `json:"main_tier" gorm:"not null"`
	SubPosition1 Position `json:"sub_position1,omitempty"`
	SubTier1     Tier     `json:"sub_tier1,omitempty"`
	SubPosition2 Position `json:"sub_position2,omitempty"`
	SubTier2     Tier     `json:"sub_tier2,omitempty"`
}

// Setting is a single key/value row used for durable session settings, such
// as the current-user designation.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value"`
}

// SettingCurrentUser is the settings key holding the designated current user.
const SettingCurrentUser = "current_user"

// Validate checks the player declaration. Secondary positions must differ
// from the main position and from each other, and every declared tier must be
// a known tier.
func (p *Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if !p.MainPosition.IsValid() {
		return fmt.Errorf("unknown main position %q", p.MainPosition)
	}
	if !p.MainTier.IsValid() {
		return fmt.Errorf("unknown main tier %q", p.MainTier)
	}
	if p.SubPosition1 != "" {
		if !p.SubPosition1.IsValid() {
			return fmt.Errorf("unknown secondary position %q", p.SubPosition1)
		}
		if p.SubPosition1 == p.MainPosition {
			return fmt.Errorf("secondary position %q duplicates the main position", p.SubPosition1)
		}
		if p.SubTier1 != "" && !p.SubTier1.IsValid() {
			return fmt.Errorf("unknown secondary tier %q", p.SubTier1)
		}
	}
	if p.SubPosition2 != "" {
		if !p.SubPosition2.IsValid() {
			return fmt.Errorf("unknown secondary position %q", p.SubPosition2)
		}
		if p.SubPosition2 == p.MainPosition {
			return fmt.Errorf("secondary position %q duplicates the main position", p.SubPosition2)
		}
		if p.SubPosition2 == p.SubPosition1 {
			return fmt.Errorf("secondary positions must differ from each other")
		}
		if p.SubTier2 != "" && !p.SubTier2.IsValid() {
			return fmt.Errorf("unknown secondary tier %q", p.SubTier2)
		}
	}
	return nil
}

// Normalize clamps secondary tiers down to the main tier whenever they claim
// to be stronger. A weaker or equal secondary tier is preserved exactly. This
// is a silent adjustment, not a validation error.
func (p *Player) Normalize() {
	if p.SubPosition1 != "" && p.SubTier1 != "" && p.SubTier1.Outranks(p.MainTier) {
		p.SubTier1 = p.MainTier
	}
	if p.SubPosition2 != "" && p.SubTier2 != "" && p.SubTier2.Outranks(p.MainTier) {
		p.SubTier2 = p.MainTier
	}
}
