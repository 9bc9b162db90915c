package cart

// UpdateQuantity adds delta to the quantity of the item with the given index,
// never letting it drop below one. Stock limits are not checked here.
func UpdateQuantity(c Cart, cartItemIdx int64, delta int) Cart {
	return mapItems(c, func(item Item) (Item, bool) {
		if item.CartItemIdx != cartItemIdx {
			return item, false
		}
		item.Quantity = max(minQuantity, item.Quantity+delta)
		return item, true
	})
}

// mapItems applies fn to every item and returns a fresh cart. Stores where fn
// changed nothing keep their original item slice.
func mapItems(c Cart, fn func(Item) (Item, bool)) Cart {
	if c == nil {
		return nil
	}

	out := make(Cart, len(c))
	for i, store := range c {
		out[i] = mapStoreItems(store, fn)
	}
	return out
}

func mapStoreItems(store Store, fn func(Item) (Item, bool)) Store {
	var items []Item
	for i, item := range store.Items {
		updated, changed := fn(item)
		if !changed {
			continue
		}
		if items == nil {
			items = make([]Item, len(store.Items))
			copy(items, store.Items)
		}
		items[i] = updated
	}

	if items == nil {
		return store
	}
	return Store{StoreName: store.StoreName, Items: items}
}
