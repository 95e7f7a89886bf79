package component

// Monster is an immutable enemy template from the monster tables.
type Monster struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	HP       int    `json:"hp"`
	Attack   int    `json:"attack"`
	Defense  int    `json:"defense"`
	ExpDrop  int    `json:"expDrop"`
	GoldDrop int    `json:"goldDrop"`
	Image    string `json:"image"`
}

// Enemy is the live combat instance spawned from a Monster.
type Enemy struct {
	Monster
	CurrentHP int
}

// NewEnemy copies the template; Monster holds no references, so the value
// copy shares nothing with the table entry.
func NewEnemy(m Monster) Enemy {
	return Enemy{Monster: m, CurrentHP: m.HP}
}

// HPPercent returns remaining HP as 0-100.
func (e Enemy) HPPercent() int {
	if e.HP <= 0 || e.CurrentHP <= 0 {
		return 0
	}
	pct := e.CurrentHP * 100 / e.HP
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Mission is a timed training task that pays out when its duration elapses.
type Mission struct {
	Key        string
	Name       string
	Duration   int // seconds
	ExpReward  int
	GoldReward int
}
