package parameter

// Dice
const (
	// DieFaces is the highest roll; rolling it is a critical hit
	DieFaces = 20
)

// Fight Option Defaults
const (
	DefaultMaxHP      = 5
	DefaultBaseDamage = 1
	DefaultCritDamage = 5

	// MaxHPStep and MaxHPLimit drive the max HP option cycle (5, 10, 15, 20, 5...)
	MaxHPStep  = 5
	MaxHPLimit = 20

	// DamageLimit caps the damage option cycle (1, 5, 10, 15, 20, 1...)
	DamageLimit = 20
)
