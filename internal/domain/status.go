package domain

// OrderStatus is the lifecycle state stored in a shipment's order_status field
// and in every status update.
type OrderStatus string

const (
	StatusYetToBePicked    OrderStatus = "yet_to_be_picked"
	StatusPickedUp         OrderStatus = "picked_up"
	StatusInTransit        OrderStatus = "intransit"
	StatusOnTheWay         OrderStatus = "on_the_way"
	StatusTerminalShipping OrderStatus = "terminal_shipping"
	StatusDelivered        OrderStatus = "delivered"
	StatusDeliveryRejected OrderStatus = "delivery_rejected"
	StatusOnHold           OrderStatus = "onhold"
)

// Presentation metadata for one status code.
type StatusInfo struct {
	Code  OrderStatus
	Label string
	Color string
	Icon  string
}

// statusVocabulary is ordered by typical lifecycle progression followed by the
// exception states. Every OrderStatus constant has exactly one entry.
var statusVocabulary = []StatusInfo{
	{Code: StatusYetToBePicked, Label: "Yet to be picked", Color: "yellow", Icon: "clock"},
	{Code: StatusPickedUp, Label: "Picked up", Color: "blue", Icon: "package"},
	{Code: StatusInTransit, Label: "In Transit", Color: "indigo", Icon: "truck"},
	{Code: StatusOnTheWay, Label: "On the way", Color: "purple", Icon: "truck"},
	{Code: StatusTerminalShipping, Label: "Terminal shipping", Color: "orange", Icon: "package"},
	{Code: StatusDelivered, Label: "Delivered", Color: "green", Icon: "check"},
	{Code: StatusDeliveryRejected, Label: "Delivery rejected", Color: "red", Icon: "package"},
	{Code: StatusOnHold, Label: "On hold", Color: "gray", Icon: "clock"},
}

var statusIndex = func() map[OrderStatus]StatusInfo {
	m := make(map[OrderStatus]StatusInfo, len(statusVocabulary))
	for _, s := range statusVocabulary {
		m[s.Code] = s
	}
	return m
}()

// Statuses returns the vocabulary in lifecycle order. The slice is a copy.
func Statuses() []StatusInfo {
	out := make([]StatusInfo, len(statusVocabulary))
	copy(out, statusVocabulary)
	return out
}

// LookupStatus returns the presentation metadata for a status code.
func LookupStatus(s OrderStatus) (StatusInfo, bool) {
	info, ok := statusIndex[s]
	return info, ok
}

// Valid reports whether s is a member of the status enumeration.
func (s OrderStatus) Valid() bool {
	_, ok := statusIndex[s]
	return ok
}

// Label falls back to the raw code for values outside the vocabulary,
// and to "Unknown" for an empty status.
func (s OrderStatus) Label() string {
	if info, ok := statusIndex[s]; ok {
		return info.Label
	}
	if s == "" {
		return "Unknown"
	}
	return string(s)
}

// Color is empty for unknown codes.
func (s OrderStatus) Color() string {
	return statusIndex[s].Color
}

func (s OrderStatus) Icon() string {
	return statusIndex[s].Icon
}
