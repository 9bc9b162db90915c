package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"shop_companion/internal/cart"
	"shop_companion/internal/shopapi"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type usageError struct {
	Usage string
}

func (e usageError) Error() string {
	return "사용법: " + e.Usage
}

// commandError carries a failed one-shot command to main, which prints it.
type commandError struct {
	err error
}

func (e commandError) Error() string {
	return friendlyAPIError(e.err)
}

func (e commandError) Unwrap() error {
	return e.err
}

// lockedWriter serialises writes from the REPL and the map server callbacks.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newLockedWriter(w io.Writer) *lockedWriter {
	if lw, ok := w.(*lockedWriter); ok {
		return lw
	}
	return &lockedWriter{w: w}
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func trackCall[T any](logger *zap.Logger, name string, fields []zap.Field, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	elapsed := time.Since(start)

	fields = append(fields,
		zap.String("name", name),
		zap.Int64("ms", elapsed.Milliseconds()),
		zap.Bool("ok", err == nil),
	)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.Info("api call", fields...)
	return result, err
}

func friendlyAPIError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, shopapi.ErrMissingToken):
		return "API 토큰이 없습니다. --token 또는 API_TOKEN을 설정하세요."
	case errors.Is(err, shopapi.ErrUnauthorized):
		return "인증에 실패했습니다. 토큰을 확인하세요."
	case errors.Is(err, shopapi.ErrNotFound):
		return "요청한 항목을 찾을 수 없습니다."
	case errors.Is(err, shopapi.ErrRateLimited):
		return "요청이 너무 많습니다. 잠시 후 다시 시도하세요."
	default:
		return err.Error()
	}
}

// loadCartFile reads a cart fixture in JSON or YAML, chosen by extension.
func loadCartFile(path string) (cart.Cart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cart file: %w", err)
	}

	var c cart.Cart
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	default:
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		return nil, fmt.Errorf("decode cart file %s: %w", filepath.Base(path), err)
	}
	return c, nil
}

func parseCartItemIdx(value string) (int64, error) {
	idx, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("잘못된 상품 번호: %q", value)
	}
	return idx, nil
}

// parseLocation reads "<lat> <lng> [zoom]"; a missing zoom is 0 so the bridge
// applies its default.
func parseLocation(args []string, usage string) (lat, lng float64, zoom int, err error) {
	if len(args) < 2 || len(args) > 3 {
		return 0, 0, 0, usageError{Usage: usage}
	}
	if lat, err = strconv.ParseFloat(args[0], 64); err != nil || lat < -90 || lat > 90 {
		return 0, 0, 0, fmt.Errorf("잘못된 위도: %q", args[0])
	}
	if lng, err = strconv.ParseFloat(args[1], 64); err != nil || lng < -180 || lng > 180 {
		return 0, 0, 0, fmt.Errorf("잘못된 경도: %q", args[1])
	}
	if len(args) == 3 {
		if zoom, err = strconv.Atoi(args[2]); err != nil {
			return 0, 0, 0, fmt.Errorf("잘못된 확대 수준: %q", args[2])
		}
	}
	return lat, lng, zoom, nil
}
