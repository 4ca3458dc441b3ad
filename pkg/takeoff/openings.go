package takeoff

import (
	"fmt"

	"mjengo.ke/estimator/pkg/boq"
)

// Standard fallback opening sizes, meters.
const (
	defaultDoorWidth    = 0.9
	defaultDoorHeight   = 2.1
	defaultWindowWidth  = 1.2
	defaultWindowHeight = 1.5
)

func validateOpening(kind, room string, o Opening) error {
	if o.Count < 0 {
		return fmt.Errorf("takeoff: %s in %s has negative count %v", kind, room, o.Count)
	}
	if o.Price < 0 {
		return fmt.Errorf("takeoff: %s in %s has negative price %v", kind, room, o.Price)
	}
	if o.Frame != nil && o.Frame.Price < 0 {
		return fmt.Errorf("takeoff: %s frame in %s has negative price %v", kind, room, o.Frame.Price)
	}
	return nil
}

// MapDoors emits one item per door entry across all rooms. Negative counts
// or prices indicate corrupted upstream data and abort the mapper.
func MapDoors(rooms []RoomRecord) ([]boq.Item, error) {
	seq := NewSequence("DR")
	var items []boq.Item

	for _, room := range rooms {
		for _, door := range room.Doors {
			if err := validateOpening("door", room.Name, door); err != nil {
				return nil, err
			}
			count := door.Count
			if count == 0 {
				count = 1
			}
			doorType := door.Type
			if doorType == "" {
				doorType = "Wooden"
			}
			items = append(items, boq.Item{
				ItemNo:      seq.Next(),
				Description: fmt.Sprintf("%s Door (%s) - %s", doorType, door.size(defaultDoorWidth, defaultDoorHeight), room.Name),
				Unit:        "No",
				Quantity:    count,
				Rate:        door.Price,
				Amount:      count * door.Price,
				Category:    "openings",
				Element:     "Doors",
			})
		}
	}

	return items, nil
}

// MapWindows emits one item per window entry across all rooms.
func MapWindows(rooms []RoomRecord) ([]boq.Item, error) {
	seq := NewSequence("WIN")
	var items []boq.Item

	for _, room := range rooms {
		for _, window := range room.Windows {
			if err := validateOpening("window", room.Name, window); err != nil {
				return nil, err
			}
			count := window.Count
			if count == 0 {
				count = 1
			}
			glass := window.Glass
			if glass == "" {
				glass = "Clear"
			}
			items = append(items, boq.Item{
				ItemNo:      seq.Next(),
				Description: fmt.Sprintf("%s Glass Window (%s) - %s", glass, window.size(defaultWindowWidth, defaultWindowHeight), room.Name),
				Unit:        "No",
				Quantity:    count,
				Rate:        window.Price,
				Amount:      count * window.Price,
				Category:    "openings",
				Element:     "Windows",
			})
		}
	}

	return items, nil
}

// MapFrames walks door and window entries and emits an independent frame
// item wherever a frame with a positive price is attached. A frame priced
// at zero is treated as "no separate frame" rather than a free item.
func MapFrames(rooms []RoomRecord) ([]boq.Item, error) {
	seq := NewSequence("FRM")
	var items []boq.Item

	appendFrame := func(kind, room string, o Opening) error {
		if err := validateOpening(kind, room, o); err != nil {
			return err
		}
		if o.Frame == nil || o.Frame.Price <= 0 {
			return nil
		}
		count := o.Count
		if count == 0 {
			count = 1
		}
		frameType := o.Frame.Type
		if frameType == "" {
			frameType = "Timber"
		}
		items = append(items, boq.Item{
			ItemNo:      seq.Next(),
			Description: fmt.Sprintf("%s Frame to %s - %s", frameType, kind, room),
			Unit:        "No",
			Quantity:    count,
			Rate:        o.Frame.Price,
			Amount:      count * o.Frame.Price,
			Category:    "openings",
			Element:     "Frames",
		})
		return nil
	}

	for _, room := range rooms {
		for _, door := range room.Doors {
			if err := appendFrame("door", room.Name, door); err != nil {
				return nil, err
			}
		}
		for _, window := range room.Windows {
			if err := appendFrame("window", room.Name, window); err != nil {
				return nil, err
			}
		}
	}

	return items, nil
}
