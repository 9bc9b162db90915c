package cart

type Summary struct {
	Stores           int   `json:"stores"`
	Items            int   `json:"items"`
	SelectedItems    int   `json:"selected_items"`
	SelectedQuantity int   `json:"selected_quantity"`
	SelectedAmount   int64 `json:"selected_amount"`
	SelectedDiscount int64 `json:"selected_discount"`
}

// Summarize totals the selected lines for the checkout bar.
func Summarize(c Cart) Summary {
	summary := Summary{Stores: len(c)}
	for _, store := range c {
		for _, item := range store.Items {
			summary.Items++
			if !item.Selected {
				continue
			}
			summary.SelectedItems++
			summary.SelectedQuantity += item.Quantity
			summary.SelectedAmount += item.LineAmount()
			summary.SelectedDiscount += (item.Price - item.UnitPrice()) * int64(item.Quantity)
		}
	}
	return summary
}

// Selected keeps only selected items, dropping stores left without any.
func Selected(c Cart) Cart {
	var out Cart
	for _, store := range c {
		var items []Item
		for _, item := range store.Items {
			if item.Selected {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			out = append(out, Store{StoreName: store.StoreName, Items: items})
		}
	}
	return out
}

func FindItem(c Cart, cartItemIdx int64) (Item, bool) {
	for _, store := range c {
		for _, item := range store.Items {
			if item.CartItemIdx == cartItemIdx {
				return item, true
			}
		}
	}
	return Item{}, false
}
