package assets

import "blaze-and-steel/internal/component"

// AreaForest is the only explorable area.
const AreaForest = "Forest"

// MonsterTables lists the monsters that can be encountered in each area.
var MonsterTables = map[string][]component.Monster{
	AreaForest: {
		{ID: 1, Name: "Novice Slime", Level: 1, HP: 50, Attack: 8, Defense: 2, ExpDrop: 15, GoldDrop: 5, Image: IconSlime},
		{ID: 2, Name: "Goblin Thief", Level: 3, HP: 70, Attack: 15, Defense: 5, ExpDrop: 25, GoldDrop: 10, Image: IconGoblin},
	},
}

// Areas returns the explorable area names in display order.
func Areas() []string {
	return []string{AreaForest}
}
