package domain

type Importance uint8

const (
	ImportanceLow Importance = iota
	ImportanceDefault
	ImportanceHigh
)

func (i Importance) String() string {
	switch i {
	case ImportanceLow:
		return "low"
	case ImportanceHigh:
		return "high"
	default:
		return "default"
	}
}

type NotificationChannel struct {
	Id               string     `bson:"_id"`
	DisplayName      string     `bson:"displayName"`
	Importance       Importance `bson:"importance"`
	Description      string     `bson:"description"`
	VibrationEnabled bool       `bson:"vibrationEnabled"`
}

// DefaultChannel is the only channel the agent posts to.
func DefaultChannel() NotificationChannel {
	return NotificationChannel{
		Id:               DefaultChannelId,
		DisplayName:      "Waste Management Notifications",
		Importance:       ImportanceHigh,
		Description:      "Notifications for waste pickup and recycling updates",
		VibrationEnabled: true,
	}
}
