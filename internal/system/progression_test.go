package system

import (
	"errors"
	"testing"

	"blaze-and-steel/internal/component"
)

func TestGainExperienceSingleLevel(t *testing.T) {
	h := component.NewHero()
	h.Exp = 95
	h.CurrentHP = 40
	totals := component.Totals{component.BonusHP: 5}

	levels := GainExperience(&h, 10, totals)
	if levels != 1 {
		t.Fatalf("levels = %d; want 1", levels)
	}
	if h.Level != 2 || h.Exp != 5 || h.ExpToNextLevel != 150 {
		t.Errorf("level/exp/next = %d/%d/%d; want 2/5/150", h.Level, h.Exp, h.ExpToNextLevel)
	}
	if h.AttributePoints != 3 {
		t.Errorf("attribute points = %d; want 3", h.AttributePoints)
	}
	if h.CurrentHP != 115 {
		t.Errorf("current HP = %d; want 115 (110 base + 5 equipment)", h.CurrentHP)
	}
}

func TestGainExperienceMultiLevelIsAdditive(t *testing.T) {
	h := component.NewHero()
	before := h
	// 100 + 150 + 225 = 475 crosses exactly three thresholds.
	levels := GainExperience(&h, 480, nil)
	if levels != 3 {
		t.Fatalf("levels = %d; want 3", levels)
	}
	if h.Exp != 5 || h.ExpToNextLevel != 337 {
		t.Errorf("exp/next = %d/%d; want 5/337", h.Exp, h.ExpToNextLevel)
	}
	if got := h.BaseHP - before.BaseHP; got != 30 {
		t.Errorf("maxHP gain = %d; want 30", got)
	}
	if got := h.BaseAttack - before.BaseAttack; got != 6 {
		t.Errorf("attack gain = %d; want 6", got)
	}
	if got := h.BaseDefense - before.BaseDefense; got != 3 {
		t.Errorf("defense gain = %d; want 3", got)
	}
	if h.AttributePoints != 9 {
		t.Errorf("attribute points = %d; want 9", h.AttributePoints)
	}
	if h.CurrentHP != h.BaseHP {
		t.Errorf("current HP = %d; want full %d", h.CurrentHP, h.BaseHP)
	}
}

func TestGainExperienceSplitEqualsSum(t *testing.T) {
	pairs := [][2]int{{0, 0}, {10, 90}, {99, 1}, {50, 1000}, {333, 777}, {1, 5000}}
	for _, p := range pairs {
		a := component.NewHero()
		GainExperience(&a, p[0], nil)
		GainExperience(&a, p[1], nil)

		b := component.NewHero()
		GainExperience(&b, p[0]+p[1], nil)

		if a.Level != b.Level || a.Exp != b.Exp || a.ExpToNextLevel != b.ExpToNextLevel {
			t.Errorf("split %v: got %d/%d/%d, combined %d/%d/%d", p,
				a.Level, a.Exp, a.ExpToNextLevel, b.Level, b.Exp, b.ExpToNextLevel)
		}
	}
}

func TestGainExperienceGuardsZeroThreshold(t *testing.T) {
	h := component.NewHero()
	h.ExpToNextLevel = 0
	levels := GainExperience(&h, 3, nil)
	if levels != 3 {
		t.Errorf("levels = %d; want 3 with threshold pinned at 1", levels)
	}
}

func TestAllocateAttributePoint(t *testing.T) {
	h := component.NewHero()
	if err := AllocateAttributePoint(&h, component.StatAttack, nil); !errors.Is(err, ErrNoAttributePoints) {
		t.Fatalf("err = %v; want ErrNoAttributePoints", err)
	}
	if h.BaseAttack != 10 {
		t.Fatalf("attack changed without points: %d", h.BaseAttack)
	}

	h.AttributePoints = 2
	h.CurrentHP = 10
	if err := AllocateAttributePoint(&h, component.StatMaxHP, nil); err != nil {
		t.Fatalf("allocate max HP: %v", err)
	}
	if h.BaseHP != 101 || h.CurrentHP != 101 || h.AttributePoints != 1 {
		t.Errorf("hp/current/points = %d/%d/%d; want 101/101/1", h.BaseHP, h.CurrentHP, h.AttributePoints)
	}

	if err := AllocateAttributePoint(&h, component.StatSoul, nil); !errors.Is(err, ErrStatNotAllocatable) {
		t.Errorf("soul allocation err = %v; want ErrStatNotAllocatable", err)
	}
	if h.AttributePoints != 1 {
		t.Errorf("rejected allocation spent a point")
	}
}

func TestSpendSoulPoint(t *testing.T) {
	h := component.NewHero()
	if err := SpendSoulPoint(&h, component.StatDefense, nil); !errors.Is(err, ErrNoSoul) {
		t.Fatalf("err = %v; want ErrNoSoul", err)
	}

	h.BaseSoul = 1
	if err := SpendSoulPoint(&h, component.StatDefense, nil); err != nil {
		t.Fatalf("spend soul: %v", err)
	}
	if h.BaseSoul != 0 || h.BaseDefense != 6 {
		t.Errorf("soul/defense = %d/%d; want 0/6", h.BaseSoul, h.BaseDefense)
	}
}

func TestSoulForLevel(t *testing.T) {
	cases := map[int]int{0: 0, 1: 0, 9: 0, 10: 1, 19: 1, 25: 2, 100: 10}
	for level, want := range cases {
		if got := SoulForLevel(level); got != want {
			t.Errorf("SoulForLevel(%d) = %d; want %d", level, got, want)
		}
	}
}
