// Package cart holds the cart selection engine: pure transformations over a
// snapshot of stores and their line items. Nothing here mutates its input.
package cart

type ItemImage struct {
	OriginalName string `json:"originalName" yaml:"originalName"`
	FileURL      string `json:"fileUrl" yaml:"fileUrl"`
	Order        int    `json:"order" yaml:"order"`
}

type Item struct {
	CartItemIdx   int64     `json:"cartItemIdx" yaml:"cartItemIdx"`
	StoreCode     string    `json:"storeCode" yaml:"storeCode"`
	ProductName   string    `json:"productNm" yaml:"productNm"`
	Price         int64     `json:"price" yaml:"price"`
	DiscountPrice int64     `json:"discountPrice" yaml:"discountPrice"`
	Quantity      int       `json:"quantity" yaml:"quantity"`
	ProductAmount int64     `json:"productAmount" yaml:"productAmount"`
	Image         ItemImage `json:"itemImg" yaml:"itemImg"`
	Selected      bool      `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// UnitPrice is the discounted price when one applies, otherwise the list price.
func (i Item) UnitPrice() int64 {
	if i.DiscountPrice > 0 && i.DiscountPrice < i.Price {
		return i.DiscountPrice
	}
	return i.Price
}

func (i Item) LineAmount() int64 {
	return i.UnitPrice() * int64(i.Quantity)
}

// Store groups items by store display name. Whether a store is selected is
// always derived from its items, see IsStoreAllSelected.
type Store struct {
	StoreName string `json:"storeNm" yaml:"storeNm"`
	Items     []Item `json:"items" yaml:"items"`
}

// Cart keeps stores in the order they were received.
type Cart []Store

const minQuantity = 1
