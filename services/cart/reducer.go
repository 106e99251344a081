package cart

// The functions below never modify their receiver: every mutation works on a copy of the
// items and recomputes both totals from scratch.

func (s Snapshot) AddItem(item Item) Snapshot {
	items := s.copyItems()
	idx := s.indexOf(item.UID)
	if idx < 0 {
		items = append(items, LineItem{
			UID:       item.UID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Image:     item.Image,
			Quantity:  1,
		})
	} else {
		items[idx].Quantity++
	}
	return newSnapshot(items)
}

func (s Snapshot) IncreaseQuantity(uid string) Snapshot {
	idx := s.indexOf(uid)
	if idx < 0 {
		return s
	}
	items := s.copyItems()
	items[idx].Quantity++
	return newSnapshot(items)
}

func (s Snapshot) DecreaseQuantity(uid string) Snapshot {
	idx := s.indexOf(uid)
	if idx < 0 {
		return s
	}
	if s.Items[idx].Quantity == 1 {
		return s.RemoveItem(uid)
	}
	items := s.copyItems()
	items[idx].Quantity--
	return newSnapshot(items)
}

func (s Snapshot) RemoveItem(uid string) Snapshot {
	idx := s.indexOf(uid)
	if idx < 0 {
		return s
	}
	items := make([]LineItem, 0, len(s.Items)-1)
	items = append(items, s.Items[:idx]...)
	items = append(items, s.Items[idx+1:]...)
	return newSnapshot(items)
}

// RemoveOrdered takes the given lines out of the cart. Quantity added to a line after it was
// ordered stays behind, so does a line that was not ordered at all.
func (s Snapshot) RemoveOrdered(ordered []LineItem) Snapshot {
	items := s.copyItems()
	for _, o := range ordered {
		for i := range items {
			if items[i].UID == o.UID {
				items[i].Quantity -= o.Quantity
				break
			}
		}
	}
	remaining := make([]LineItem, 0, len(items))
	for _, li := range items {
		if li.Quantity > 0 {
			remaining = append(remaining, li)
		}
	}
	return newSnapshot(remaining)
}

func (s Snapshot) Clear() Snapshot {
	return newSnapshot(nil)
}

func (s Snapshot) copyItems() []LineItem {
	items := make([]LineItem, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)
	return items
}

func newSnapshot(items []LineItem) Snapshot {
	if items == nil {
		items = []LineItem{}
	}
	s := Snapshot{Items: items}
	for _, li := range items {
		s.TotalQuantity += li.Quantity
		s.TotalAmount += li.TotalPrice()
	}
	return s
}
