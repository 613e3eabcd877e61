package domain

type DataKind uint8

const (
	DataKindUnknown DataKind = iota
	DataKindPickupScheduled
	DataKindPickupCompleted
	DataKindPaymentReceived
)

const (
	TypePickupScheduled = "pickup_scheduled"
	TypePickupCompleted = "pickup_completed"
	TypePaymentReceived = "payment_received"
)

func (k DataKind) String() string {
	switch k {
	case DataKindPickupScheduled:
		return TypePickupScheduled
	case DataKindPickupCompleted:
		return TypePickupCompleted
	case DataKindPaymentReceived:
		return TypePaymentReceived
	default:
		return "unknown"
	}
}

// DataMessageType is the classified "type" of a data payload.
// For DataKindUnknown, Raw holds the unmatched value, or Absent is set when there was no key.
type DataMessageType struct {
	Kind   DataKind
	Raw    string
	Absent bool
}

func KnownType(kind DataKind) DataMessageType {
	return DataMessageType{Kind: kind}
}

func UnknownType(raw string) DataMessageType {
	return DataMessageType{Kind: DataKindUnknown, Raw: raw}
}

func AbsentType() DataMessageType {
	return DataMessageType{Kind: DataKindUnknown, Absent: true}
}

func (t DataMessageType) IsKnown() bool {
	return t.Kind != DataKindUnknown
}

func (t DataMessageType) String() string {
	if t.IsKnown() {
		return t.Kind.String()
	}
	if t.Absent {
		return "unknown(absent)"
	}
	return "unknown(" + t.Raw + ")"
}
