package cart

// Item is what gets added to the cart. UnitPrice is in minor currency units (cents).
type Item struct {
	UID       string
	Name      string
	UnitPrice int64
	Image     string
}

type LineItem struct {
	UID       string
	Name      string
	UnitPrice int64
	Image     string
	Quantity  int
}

func (li LineItem) TotalPrice() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Snapshot is the complete state of a cart as plain data. TotalQuantity and TotalAmount are
// always the sums over Items.
type Snapshot struct {
	Items         []LineItem
	TotalQuantity int
	TotalAmount   int64
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

func (s Snapshot) Find(uid string) (LineItem, bool) {
	idx := s.indexOf(uid)
	if idx < 0 {
		return LineItem{}, false
	}
	return s.Items[idx], true
}

func (s Snapshot) indexOf(uid string) int {
	for i, li := range s.Items {
		if li.UID == uid {
			return i
		}
	}
	return -1
}
