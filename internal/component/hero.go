package component

// Hero is the persistent player record. JSON keys match the save format.
type Hero struct {
	Name            string `json:"name"`
	ClassName       string `json:"className"`
	Level           int    `json:"level"`
	Exp             int    `json:"exp"`
	ExpToNextLevel  int    `json:"expToNextLevel"`
	Gold            int    `json:"gold"`
	BaseHP          int    `json:"baseHp"`
	CurrentHP       int    `json:"currentHp"`
	BaseAttack      int    `json:"baseAttack"`
	BaseDefense     int    `json:"baseDefense"`
	BaseEnergy      int    `json:"baseEnergy"`
	BaseSoul        int    `json:"baseSoul"`
	BaseDexterity   int    `json:"baseDexterity"`
	CritChance      int    `json:"critChance"`
	AttributePoints int    `json:"attributePoints"`
}

// NewHero returns a hero with the initial default values.
func NewHero() Hero {
	return Hero{
		Level:          1,
		ExpToNextLevel: 100,
		Gold:           50,
		BaseHP:         100,
		CurrentHP:      100,
		BaseAttack:     10,
		BaseDefense:    5,
		BaseEnergy:     1,
		BaseDexterity:  1,
		CritChance:     5,
	}
}

// field returns a pointer to the base value of s, or nil for an unknown stat.
func (h *Hero) field(s StatID) *int {
	switch s {
	case StatMaxHP:
		return &h.BaseHP
	case StatAttack:
		return &h.BaseAttack
	case StatDefense:
		return &h.BaseDefense
	case StatEnergy:
		return &h.BaseEnergy
	case StatSoul:
		return &h.BaseSoul
	case StatDexterity:
		return &h.BaseDexterity
	case StatCritChance:
		return &h.CritChance
	}
	return nil
}

// Base returns the base (equipment-free) value of s.
func (h Hero) Base(s StatID) int {
	if p := h.field(s); p != nil {
		return *p
	}
	return 0
}

// AddBase adds n to the base value of s. Unknown stats are ignored.
func (h *Hero) AddBase(s StatID, n int) bool {
	p := h.field(s)
	if p == nil {
		return false
	}
	*p += n
	return true
}

// MaxHP returns base HP plus the equipment HP bonus.
func (h Hero) MaxHP(t Totals) int {
	return h.BaseHP + t[BonusHP]
}

// ClampHP keeps CurrentHP within [0, MaxHP].
func (h *Hero) ClampHP(t Totals) {
	limit := h.MaxHP(t)
	if h.CurrentHP > limit {
		h.CurrentHP = limit
	}
	if h.CurrentHP < 0 {
		h.CurrentHP = 0
	}
}

// Heal restores CurrentHP to MaxHP.
func (h *Hero) Heal(t Totals) { h.CurrentHP = h.MaxHP(t) }
