package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"shop_companion/internal/cart"
	"shop_companion/internal/format"
	"shop_companion/internal/nearby"

	"go.uber.org/zap"
)

func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

func writeCart(w io.Writer, c cart.Cart) {
	if len(c) == 0 {
		fmt.Fprintln(w, "장바구니가 비어 있습니다.")
		return
	}

	fmt.Fprintf(w, "%s 전체 선택\n", checkbox(cart.IsAllSelected(c)))
	for _, store := range c {
		fmt.Fprintf(w, "\n%s %s\n", checkbox(cart.IsStoreAllSelected(store)), store.StoreName)
		for _, item := range store.Items {
			fmt.Fprintf(w, "  %s #%d %s x%d  %s", checkbox(item.Selected), item.CartItemIdx, item.ProductName, item.Quantity, format.Price(item.LineAmount()))
			if item.UnitPrice() < item.Price {
				fmt.Fprintf(w, " (정가 %s)", format.Price(item.Price*int64(item.Quantity)))
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
	writeSummary(w, cart.Summarize(c))
}

func writeSummary(w io.Writer, s cart.Summary) {
	fmt.Fprintf(w, "선택 %d/%d개 (수량 %d) 합계 %s", s.SelectedItems, s.Items, s.SelectedQuantity, format.Price(s.SelectedAmount))
	if s.SelectedDiscount > 0 {
		fmt.Fprintf(w, ", 할인 %s", format.Price(s.SelectedDiscount))
	}
	fmt.Fprintln(w)
}

func writeListings(w io.Writer, listings []nearby.Listing) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "- (주변 매장 없음)")
		return
	}
	for i, l := range listings {
		fmt.Fprintf(w, "%d) %s (id=%s) %s", i+1, l.Store.Name, l.Store.ID, l.DistanceText)
		if l.Store.Address != "" {
			fmt.Fprintf(w, ", %s", l.Store.Address)
		}
		if !l.Store.Open {
			fmt.Fprint(w, ", 영업 종료")
		}
		fmt.Fprintln(w)
	}
}

type listingJSON struct {
	ID        string  `json:"storeCode"`
	Name      string  `json:"storeNm"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Open      bool    `json:"isOpen"`
	Meters    float64 `json:"distanceMeters"`
	Distance  string  `json:"distance"`
}

func listingsJSON(listings []nearby.Listing) []listingJSON {
	out := make([]listingJSON, 0, len(listings))
	for _, l := range listings {
		out = append(out, listingJSON{
			ID:        l.Store.ID,
			Name:      l.Store.Name,
			Address:   l.Store.Address,
			Latitude:  l.Store.Latitude,
			Longitude: l.Store.Longitude,
			Open:      l.Store.Open,
			Meters:    l.DistanceMeters,
			Distance:  l.DistanceText,
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func logCartChange(logger *zap.Logger, command string, before, after cart.Cart) {
	if logger == nil {
		return
	}
	b, a := cart.Summarize(before), cart.Summarize(after)
	logger.Info("cart updated",
		zap.String("command", command),
		zap.Int("selected_before", b.SelectedItems),
		zap.Int("selected_after", a.SelectedItems),
		zap.Int("quantity_after", a.SelectedQuantity),
		zap.Int64("amount_after", a.SelectedAmount),
	)
}
