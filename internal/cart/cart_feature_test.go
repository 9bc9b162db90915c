package cart_test

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"shop_companion/internal/cart"

	"github.com/cucumber/godog"
)

type selectionTestContext struct {
	cart   cart.Cart
	before cart.Cart
}

func (c *selectionTestContext) reset() {
	c.cart = nil
	c.before = nil
}

func (c *selectionTestContext) aCartWithStoreHoldingItems(storeName, list string) error {
	c.cart = nil
	return c.storeHoldingItems(storeName, list)
}

func (c *selectionTestContext) storeHoldingItems(storeName, list string) error {
	store := cart.Store{StoreName: storeName}
	for _, raw := range strings.Split(list, ",") {
		idx, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("item index %q: %w", raw, err)
		}
		store.Items = append(store.Items, cart.Item{CartItemIdx: idx, Quantity: 1})
	}
	c.cart = append(c.cart, store)
	return nil
}

func (c *selectionTestContext) anEmptyStore(storeName string) error {
	c.cart = append(c.cart, cart.Store{StoreName: storeName, Items: []cart.Item{}})
	return nil
}

func (c *selectionTestContext) itemIsSelected(idx int) error {
	if c.findItem(idx) == nil {
		return fmt.Errorf("item %d not in cart", idx)
	}
	c.findItem(idx).Selected = true
	return nil
}

func (c *selectionTestContext) itemHasQuantity(idx, quantity int) error {
	if c.findItem(idx) == nil {
		return fmt.Errorf("item %d not in cart", idx)
	}
	c.findItem(idx).Quantity = quantity
	return nil
}

func (c *selectionTestContext) iToggleItem(idx int) error {
	c.before = c.cart
	c.cart = cart.ToggleItem(c.cart, int64(idx))
	return nil
}

func (c *selectionTestContext) iToggleAllItems() error {
	c.before = c.cart
	c.cart = cart.ToggleAll(c.cart)
	return nil
}

func (c *selectionTestContext) iToggleStore(storeName string) error {
	c.before = c.cart
	c.cart = cart.ToggleStore(c.cart, storeName)
	return nil
}

func (c *selectionTestContext) iChangeTheQuantityOfItemBy(idx, delta int) error {
	c.before = c.cart
	c.cart = cart.UpdateQuantity(c.cart, int64(idx), delta)
	return nil
}

func (c *selectionTestContext) itemShouldBeSelected(idx int) error {
	item, ok := cart.FindItem(c.cart, int64(idx))
	if !ok {
		return fmt.Errorf("item %d not in cart", idx)
	}
	if !item.Selected {
		return fmt.Errorf("expected item %d to be selected", idx)
	}
	return nil
}

func (c *selectionTestContext) itemShouldNotBeSelected(idx int) error {
	item, ok := cart.FindItem(c.cart, int64(idx))
	if !ok {
		return fmt.Errorf("item %d not in cart", idx)
	}
	if item.Selected {
		return fmt.Errorf("expected item %d to be deselected", idx)
	}
	return nil
}

func (c *selectionTestContext) theWholeCartShouldBeSelected() error {
	if !cart.IsAllSelected(c.cart) {
		return fmt.Errorf("expected every item to be selected")
	}
	return nil
}

func (c *selectionTestContext) storeShouldBeFullySelected(storeName string) error {
	store, err := c.findStore(storeName)
	if err != nil {
		return err
	}
	if !cart.IsStoreAllSelected(store) {
		return fmt.Errorf("expected store %q to be fully selected", storeName)
	}
	return nil
}

func (c *selectionTestContext) storeShouldNotBeFullySelected(storeName string) error {
	store, err := c.findStore(storeName)
	if err != nil {
		return err
	}
	if cart.IsStoreAllSelected(store) {
		return fmt.Errorf("expected store %q not to be fully selected", storeName)
	}
	return nil
}

func (c *selectionTestContext) itemShouldHaveQuantity(idx, quantity int) error {
	item, ok := cart.FindItem(c.cart, int64(idx))
	if !ok {
		return fmt.Errorf("item %d not in cart", idx)
	}
	if item.Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, item.Quantity)
	}
	return nil
}

func (c *selectionTestContext) theCartShouldEqualTheStartingCart() error {
	if !reflect.DeepEqual(c.before, c.cart) {
		return fmt.Errorf("expected cart to be unchanged")
	}
	return nil
}

// findItem points into c.cart so Given steps can set up state in place.
func (c *selectionTestContext) findItem(idx int) *cart.Item {
	for s := range c.cart {
		for i := range c.cart[s].Items {
			if c.cart[s].Items[i].CartItemIdx == int64(idx) {
				return &c.cart[s].Items[i]
			}
		}
	}
	return nil
}

func (c *selectionTestContext) findStore(storeName string) (cart.Store, error) {
	for _, store := range c.cart {
		if store.StoreName == storeName {
			return store, nil
		}
	}
	return cart.Store{}, fmt.Errorf("store %q not in cart", storeName)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &selectionTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a cart with store "([^"]*)" holding items ([\d, ]+)$`, tc.aCartWithStoreHoldingItems)
	ctx.Step(`^store "([^"]*)" holding items ([\d, ]+)$`, tc.storeHoldingItems)
	ctx.Step(`^an empty store "([^"]*)"$`, tc.anEmptyStore)
	ctx.Step(`^item (\d+) is selected$`, tc.itemIsSelected)
	ctx.Step(`^item (\d+) has quantity (\d+)$`, tc.itemHasQuantity)

	// When steps
	ctx.Step(`^I toggle item (\d+)$`, tc.iToggleItem)
	ctx.Step(`^I toggle all items$`, tc.iToggleAllItems)
	ctx.Step(`^I toggle store "([^"]*)"$`, tc.iToggleStore)
	ctx.Step(`^I change the quantity of item (\d+) by (-?\d+)$`, tc.iChangeTheQuantityOfItemBy)

	// Then steps
	ctx.Step(`^item (\d+) should be selected$`, tc.itemShouldBeSelected)
	ctx.Step(`^item (\d+) should not be selected$`, tc.itemShouldNotBeSelected)
	ctx.Step(`^the whole cart should be selected$`, tc.theWholeCartShouldBeSelected)
	ctx.Step(`^store "([^"]*)" should be fully selected$`, tc.storeShouldBeFullySelected)
	ctx.Step(`^store "([^"]*)" should not be fully selected$`, tc.storeShouldNotBeFullySelected)
	ctx.Step(`^item (\d+) should have quantity (\d+)$`, tc.itemShouldHaveQuantity)
	ctx.Step(`^the cart should equal the starting cart$`, tc.theCartShouldEqualTheStartingCart)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
