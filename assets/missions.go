package assets

import "blaze-and-steel/internal/component"

// Mission cooldown keys.
const (
	MissionResource = "resource"
	MissionDaily    = "daily"
)

// Missions are the training tasks offered on the training panel.
var Missions = []component.Mission{
	{Key: MissionResource, Name: "Quick Wood Gathering", Duration: 30, ExpReward: 5, GoldReward: 10},
	{Key: MissionDaily, Name: "Daily Patrol", Duration: 600, ExpReward: 60, GoldReward: 100},
}

// MissionByKey returns the mission for a cooldown key.
func MissionByKey(key string) (component.Mission, bool) {
	for _, m := range Missions {
		if m.Key == key {
			return m, true
		}
	}
	return component.Mission{}, false
}

// RebirthMinLevel is the level at which rebirth unlocks.
const RebirthMinLevel = 10
