package system

// Roller supplies uniform random numbers in [0, 1). *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// Strike holds the outcome of the hero's attack.
type Strike struct {
	Damage   int
	Critical bool
}

// HeroStrike resolves one hero attack.
// Damage formula: max(1, atk*(2 if crit) - def), crit when roll*100 < critChance.
func HeroStrike(attack, critChance, defense int, roll Roller) Strike {
	s := Strike{Damage: attack}
	if roll != nil && roll.Float64()*100 < float64(critChance) {
		s.Damage *= 2
		s.Critical = true
	}
	s.Damage = mitigate(s.Damage, defense)
	return s
}

// EnemyStrike resolves one enemy attack: max(1, atk-def).
func EnemyStrike(attack, defense int) int {
	return mitigate(attack, defense)
}

func mitigate(dmg, defense int) int {
	dmg -= defense
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// ApplyDamage subtracts dmg from hp, clamped at 0, and reports whether hp hit 0.
func ApplyDamage(hp *int, dmg int) bool {
	*hp -= dmg
	if *hp <= 0 {
		*hp = 0
		return true
	}
	return false
}
