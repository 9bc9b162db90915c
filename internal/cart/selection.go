package cart

// ToggleItem flips the selection of the item with the given index. Unknown
// indexes leave the cart as it was.
func ToggleItem(c Cart, cartItemIdx int64) Cart {
	return mapItems(c, func(item Item) (Item, bool) {
		if item.CartItemIdx != cartItemIdx {
			return item, false
		}
		item.Selected = !item.Selected
		return item, true
	})
}

// ToggleAll selects every item unless every item is already selected, in
// which case everything is deselected.
func ToggleAll(c Cart) Cart {
	target := !everyItemSelected(c)
	return mapItems(c, func(item Item) (Item, bool) {
		if item.Selected == target {
			return item, false
		}
		item.Selected = target
		return item, true
	})
}

// ToggleStore selects or deselects all items of the first store named
// storeName, based on whether that store is currently fully selected.
func ToggleStore(c Cart, storeName string) Cart {
	if c == nil {
		return nil
	}

	out := make(Cart, len(c))
	copy(out, c)

	for i, store := range out {
		if store.StoreName != storeName {
			continue
		}
		target := !IsStoreAllSelected(store)
		out[i] = mapStoreItems(store, func(item Item) (Item, bool) {
			if item.Selected == target {
				return item, false
			}
			item.Selected = target
			return item, true
		})
		break
	}

	return out
}

// IsStoreAllSelected reports whether the store has items and all of them are
// selected. An empty store is never considered selected.
func IsStoreAllSelected(s Store) bool {
	if len(s.Items) == 0 {
		return false
	}
	return allSelected(s.Items)
}

// IsAllSelected reports whether the cart has stores and every item of every
// store is selected. Unlike IsStoreAllSelected, an empty store inside a
// non-empty cart passes vacuously.
func IsAllSelected(c Cart) bool {
	if len(c) == 0 {
		return false
	}
	return everyItemSelected(c)
}

func everyItemSelected(c Cart) bool {
	for _, store := range c {
		if !allSelected(store.Items) {
			return false
		}
	}
	return true
}

func allSelected(items []Item) bool {
	for _, item := range items {
		if !item.Selected {
			return false
		}
	}
	return true
}
