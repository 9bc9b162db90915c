package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shop_companion/internal/cart"
	"shop_companion/internal/mapbridge"
	"shop_companion/internal/nearby"
	"shop_companion/internal/shopapi"
	"shop_companion/internal/validate"

	"go.uber.org/zap"
)

const helpText = `명령어:
  cart                          장바구니 보기
  refresh                       서버에서 장바구니 다시 불러오기
  load <file.json|file.yaml>    파일에서 장바구니 불러오기
  select <상품번호>              상품 선택/해제
  select-store <매장명>          매장 전체 선택/해제
  select-all                    전체 선택/해제
  qty <상품번호> <증감>          수량 변경 (최소 1)
  summary                       선택 합계
  checkout                      주문할 상품 보기
  stores [반경m]                 주변 매장 찾기 및 지도 표시
  locate <위도> <경도> [확대]     내 위치 설정
  move <위도> <경도> [확대]       지도 이동
  highlight <매장ID>             매장 강조
  clear [all]                   지도 마커 지우기
  validate phone|email|name <값> 입력값 검사
  exit                          종료`

type shell struct {
	opts    *Options
	session *Session
	api     *shopapi.Client
	bridge  *mapbridge.Bridge
	out     io.Writer
	logger  *zap.Logger
}

// exec runs one command line. It reports quit for exit commands. In the REPL
// user mistakes are printed and do not end the session; a one-shot command
// returns them so the process exits non-zero.
func (s *shell) exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "exit", "quit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "cart":
		err = s.showCart()
	case "refresh":
		err = s.refresh(ctx)
	case "load":
		err = s.load(args)
	case "select":
		err = s.selectItem(args)
	case "select-store":
		err = s.selectStore(args)
	case "select-all":
		s.mutate(name, cart.ToggleAll)
		err = s.showCart()
	case "qty":
		err = s.quantity(ctx, args)
	case "summary":
		err = s.summary()
	case "checkout":
		err = s.checkout()
	case "stores":
		err = s.stores(ctx, args)
	case "locate":
		err = s.locate(args)
	case "move":
		err = s.move(args)
	case "highlight":
		err = s.highlight(args)
	case "clear":
		s.clear(args)
	case "validate":
		err = s.validate(args)
	default:
		err = fmt.Errorf("알 수 없는 명령어: %s (help 참고)", name)
	}

	if err != nil {
		s.logger.Debug("command failed", zap.String("command", name), zap.Error(err))
		if s.opts.Command != "" {
			return false, commandError{err: err}
		}
		fmt.Fprintf(s.out, "오류: %s\n", friendlyAPIError(err))
	}
	return false, nil
}

func (s *shell) mutate(command string, fn func(cart.Cart) cart.Cart) {
	before, after := s.session.Apply(fn)
	logCartChange(s.logger, command, before, after)
}

func (s *shell) showCart() error {
	c := s.session.Cart()
	if s.opts.JSON {
		if c == nil {
			c = cart.Cart{}
		}
		return writeJSON(s.out, c)
	}
	writeCart(s.out, c)
	return nil
}

func (s *shell) refresh(ctx context.Context) error {
	c, err := trackCall(s.logger, "GetCart", nil, func() (cart.Cart, error) {
		return s.api.GetCart(ctx)
	})
	if err != nil {
		return err
	}
	s.session.ReplaceCart(c)
	return s.showCart()
}

func (s *shell) load(args []string) error {
	if len(args) != 1 {
		return usageError{Usage: "load <file.json|file.yaml>"}
	}
	c, err := loadCartFile(args[0])
	if err != nil {
		return err
	}
	s.session.ReplaceCart(c)
	return s.showCart()
}

func (s *shell) selectItem(args []string) error {
	if len(args) != 1 {
		return usageError{Usage: "select <상품번호>"}
	}
	idx, err := parseCartItemIdx(args[0])
	if err != nil {
		return err
	}
	if _, ok := cart.FindItem(s.session.Cart(), idx); !ok {
		fmt.Fprintf(s.out, "상품 #%d 이(가) 장바구니에 없습니다.\n", idx)
		return nil
	}
	s.mutate("select", func(c cart.Cart) cart.Cart { return cart.ToggleItem(c, idx) })
	return s.showCart()
}

func (s *shell) selectStore(args []string) error {
	if len(args) == 0 {
		return usageError{Usage: "select-store <매장명>"}
	}
	storeName := strings.Join(args, " ")
	s.mutate("select-store", func(c cart.Cart) cart.Cart { return cart.ToggleStore(c, storeName) })
	return s.showCart()
}

// quantity updates the line locally and, when the API is configured, stores
// the new absolute quantity upstream. A failed sync keeps the old snapshot.
func (s *shell) quantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError{Usage: "qty <상품번호> <증감>"}
	}
	idx, err := parseCartItemIdx(args[0])
	if err != nil {
		return err
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("잘못된 수량 증감: %q", args[1])
	}

	updated := cart.UpdateQuantity(s.session.Cart(), idx, delta)
	item, ok := cart.FindItem(updated, idx)
	if !ok {
		fmt.Fprintf(s.out, "상품 #%d 이(가) 장바구니에 없습니다.\n", idx)
		return nil
	}

	if s.api.Configured() {
		fields := []zap.Field{zap.Int64("cart_item_idx", idx), zap.Int("quantity", item.Quantity)}
		if _, err := trackCall(s.logger, "UpdateCartItemQuantity", fields, func() (struct{}, error) {
			return struct{}{}, s.api.UpdateCartItemQuantity(ctx, idx, item.Quantity)
		}); err != nil {
			return err
		}
	}

	s.mutate("qty", func(c cart.Cart) cart.Cart { return cart.UpdateQuantity(c, idx, delta) })
	return s.showCart()
}

func (s *shell) summary() error {
	summary := cart.Summarize(s.session.Cart())
	if s.opts.JSON {
		return writeJSON(s.out, summary)
	}
	writeSummary(s.out, summary)
	return nil
}

func (s *shell) checkout() error {
	selected := cart.Selected(s.session.Cart())
	if len(selected) == 0 {
		fmt.Fprintln(s.out, "선택된 상품이 없습니다.")
		return nil
	}
	if s.opts.JSON {
		return writeJSON(s.out, selected)
	}
	writeCart(s.out, selected)
	return nil
}

func (s *shell) stores(ctx context.Context, args []string) error {
	radius := s.opts.Radius
	if len(args) > 1 {
		return usageError{Usage: "stores [반경m]"}
	}
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			return fmt.Errorf("잘못된 반경: %q", args[0])
		}
		radius = parsed
	}

	origin := s.session.Origin()
	fields := []zap.Field{
		zap.Float64("latitude", origin.Latitude),
		zap.Float64("longitude", origin.Longitude),
		zap.Int("radius", radius),
	}
	stores, err := trackCall(s.logger, "ListNearbyStores", fields, func() ([]shopapi.Store, error) {
		return s.api.ListNearbyStores(ctx, origin.Latitude, origin.Longitude, radius)
	})
	if err != nil {
		return err
	}

	listings := nearby.Within(nearby.Rank(stores, origin), float64(radius))
	s.session.SetListings(listings)

	s.bridge.ClearAllMarkers()
	s.bridge.AddStoreMarkers(nearby.Markers(listings))

	if s.opts.JSON {
		return writeJSON(s.out, listingsJSON(listings))
	}
	writeListings(s.out, listings)
	return nil
}

func (s *shell) locate(args []string) error {
	lat, lng, zoom, err := parseLocation(args, "locate <위도> <경도> [확대]")
	if err != nil {
		return err
	}
	s.session.SetOrigin(nearby.Point{Latitude: lat, Longitude: lng})
	s.bridge.SetUserLocationWithZoom(lat, lng, zoom)
	fmt.Fprintf(s.out, "내 위치: %.6f, %.6f\n", lat, lng)
	return nil
}

func (s *shell) move(args []string) error {
	lat, lng, zoom, err := parseLocation(args, "move <위도> <경도> [확대]")
	if err != nil {
		return err
	}
	s.bridge.MoveMapToLocation(lat, lng, zoom)
	return nil
}

func (s *shell) highlight(args []string) error {
	if len(args) != 1 {
		return usageError{Usage: "highlight <매장ID>"}
	}
	storeID := args[0]
	if l, ok := s.session.FindListing(storeID); ok {
		s.bridge.MoveMapToLocation(l.Store.Latitude, l.Store.Longitude, 0)
		fmt.Fprintf(s.out, "%s (%s)\n", l.Store.Name, l.DistanceText)
	}
	s.bridge.HighlightStoreMarker(storeID)
	return nil
}

func (s *shell) clear(args []string) {
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		s.bridge.ClearAllMarkers()
		s.session.SetListings(nil)
		return
	}
	s.bridge.ClearMarkers()
}

func (s *shell) validate(args []string) error {
	if len(args) < 1 {
		return usageError{Usage: "validate phone|email|name <값>"}
	}
	value := strings.Join(args[1:], " ")

	var msg string
	switch strings.ToLower(args[0]) {
	case "phone":
		msg = validate.Phone(value)
	case "email":
		msg = validate.Email(value)
	case "name":
		msg = validate.Name(value)
	default:
		return usageError{Usage: "validate phone|email|name <값>"}
	}

	if msg == "" {
		fmt.Fprintln(s.out, "OK")
		return nil
	}
	fmt.Fprintln(s.out, msg)
	return nil
}

// rendererReady replays the map state a freshly loaded renderer is missing.
func (s *shell) rendererReady() {
	origin := s.session.Origin()
	s.bridge.Init()
	s.bridge.SetUserLocationWithZoom(origin.Latitude, origin.Longitude, 0)
	s.bridge.AddStoreMarkers(nearby.Markers(s.session.Listings()))
}

func (s *shell) storeSelected(storeID string) {
	s.bridge.HighlightStoreMarker(storeID)
	if l, ok := s.session.FindListing(storeID); ok {
		fmt.Fprintf(s.out, "\n지도에서 선택: %s (%s)\n", l.Store.Name, l.DistanceText)
	}
}
