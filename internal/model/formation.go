package model

// Slot is one position on the pitch, in percent of the pitch width (X) and height (Y).
type Slot struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label"`
}

type Formation struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

var Formations = []Formation{
	{
		ID: "4-4-2", Name: "4-4-2",
		Slots: []Slot{
			{50, 90, "GK"},
			{20, 70, "LB"}, {40, 70, "CB"}, {60, 70, "CB"}, {80, 70, "RB"},
			{20, 45, "LM"}, {40, 50, "CM"}, {60, 50, "CM"}, {80, 45, "RM"},
			{40, 20, "ST"}, {60, 20, "ST"},
		},
	},
	{
		ID: "4-2-3-1", Name: "4-2-3-1",
		Slots: []Slot{
			{50, 90, "GK"},
			{20, 70, "LB"}, {40, 70, "CB"}, {60, 70, "CB"}, {80, 70, "RB"},
			{40, 55, "CDM"}, {60, 55, "CDM"},
			{20, 35, "LW"}, {50, 35, "CAM"}, {80, 35, "RW"},
			{50, 15, "ST"},
		},
	},
	{
		ID: "4-3-3", Name: "4-3-3",
		Slots: []Slot{
			{50, 90, "GK"},
			{20, 70, "LB"}, {40, 70, "CB"}, {60, 70, "CB"}, {80, 70, "RB"},
			{35, 50, "CM"}, {50, 50, "CM"}, {65, 50, "CM"},
			{20, 20, "LW"}, {50, 15, "ST"}, {80, 20, "RW"},
		},
	},
}

func FindFormation(id string) (Formation, bool) {
	for _, f := range Formations {
		if f.ID == id {
			return f, true
		}
	}
	return Formation{}, false
}

type LineupSlot struct {
	Slot
	Member *TeamMember `json:"member"`
}

// Lineup pairs every slot with the first member whose position equals the slot label.
// Slots sharing a label (two CBs) resolve to the same member.
func (f Formation) Lineup(members []TeamMember) []LineupSlot {
	lineup := make([]LineupSlot, len(f.Slots))
	for i, slot := range f.Slots {
		lineup[i] = LineupSlot{Slot: slot}
		for j := range members {
			if members[j].Position == slot.Label {
				lineup[i].Member = &members[j]
				break
			}
		}
	}
	return lineup
}
