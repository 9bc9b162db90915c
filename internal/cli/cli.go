package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shop_companion/internal/cart"
	"shop_companion/internal/config"
	"shop_companion/internal/mapbridge"
	"shop_companion/internal/mapserver"
	"shop_companion/internal/nearby"
	"shop_companion/internal/shopapi"

	"go.uber.org/zap"
)

type Runner struct {
	options   Options
	logger    *zap.Logger
	api       *shopapi.Client
	bridge    *mapbridge.Bridge
	mapServer *mapserver.Server
	in        io.Reader
	out       io.Writer
}

func NewRunner(cfg config.Config, logger *zap.Logger, api *shopapi.Client, bridge *mapbridge.Bridge, mapServer *mapserver.Server) *Runner {
	logger = logger.Named("cli")
	opts := Options{
		APIBaseURL: cfg.APIBaseURL,
		APIToken:   cfg.APIToken,
		Latitude:   cfg.Latitude,
		Longitude:  cfg.Longitude,
		Radius:     cfg.NearbyRadius,
		Timeout:    cfg.Timeout,
		LogFile:    cfg.LogFile,
		Debug:      cfg.Debug,
	}

	return &Runner{
		options:   opts,
		logger:    logger,
		api:       api,
		bridge:    bridge,
		mapServer: mapServer,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

func (r *Runner) Execute() error {
	return r.run(os.Args[1:])
}

func (r *Runner) run(argv []string) error {
	opts := &r.options
	var timeoutSeconds int

	fs := flag.NewFlagSet("shop-companion", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [command]\n", fs.Name())
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.APIBaseURL, "api-url", opts.APIBaseURL, "Shop API base URL (API_BASE_URL)")
	fs.StringVar(&opts.APIToken, "token", opts.APIToken, "Shop API token (API_TOKEN)")
	fs.StringVar(&opts.CartFile, "cart-file", "", "Load the cart from a JSON or YAML file instead of the API")
	fs.Float64Var(&opts.Latitude, "lat", opts.Latitude, "User latitude (LATITUDE)")
	fs.Float64Var(&opts.Longitude, "lng", opts.Longitude, "User longitude (LONGITUDE)")
	fs.IntVar(&opts.Radius, "radius", opts.Radius, "Nearby store radius in meters (NEARBY_RADIUS)")
	fs.BoolVar(&opts.JSON, "json", false, "Output JSON format")
	fs.BoolVar(&opts.Debug, "debug", opts.Debug, "Enable debug logging")
	fs.StringVar(&opts.LogFile, "log-file", opts.LogFile, "Log file path")
	fs.IntVar(&timeoutSeconds, "timeout", int(opts.Timeout.Seconds()), "Timeout in seconds")

	if err := fs.Parse(argv); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if timeoutSeconds > 0 {
		opts.Timeout = time.Duration(timeoutSeconds) * time.Second
	}
	opts.Command = strings.TrimSpace(strings.Join(fs.Args(), " "))

	api := r.api
	if api == nil || flagsSet(fs, "api-url", "token", "timeout") {
		api = newAPIClientFromOptions(opts, r.logger)
	}

	out := newLockedWriter(r.out)
	sh := &shell{
		opts:    opts,
		session: NewSession(nearby.Point{Latitude: opts.Latitude, Longitude: opts.Longitude}, r.logger),
		api:     api,
		bridge:  r.bridge,
		out:     out,
		logger:  r.logger,
	}
	if r.mapServer != nil {
		r.mapServer.OnReady(sh.rendererReady)
		r.mapServer.OnStoreSelected(sh.storeSelected)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := r.loadInitialCart(ctx, sh); err != nil {
		return err
	}

	if opts.Command != "" {
		_, err := sh.exec(ctx, opts.Command)
		return err
	}
	return r.repl(ctx, sh)
}

func newAPIClientFromOptions(opts *Options, logger *zap.Logger) *shopapi.Client {
	cfg := config.Config{
		APIBaseURL: opts.APIBaseURL,
		APIToken:   opts.APIToken,
		Timeout:    opts.Timeout,
	}
	return shopapi.NewClient(cfg, logger)
}

func flagsSet(fs *flag.FlagSet, names ...string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				set = true
			}
		}
	})
	return set
}

// loadInitialCart seeds the session from --cart-file, or from the API when a
// token is configured. Without either the session starts empty.
func (r *Runner) loadInitialCart(ctx context.Context, sh *shell) error {
	if sh.opts.CartFile != "" {
		c, err := loadCartFile(sh.opts.CartFile)
		if err != nil {
			return err
		}
		sh.session.ReplaceCart(c)
		return nil
	}

	if !sh.api.Configured() {
		r.logger.Info("no api token; starting with an empty cart")
		return nil
	}

	c, err := trackCall(r.logger, "GetCart", nil, func() (cart.Cart, error) {
		return sh.api.GetCart(ctx)
	})
	if err != nil {
		fmt.Fprintf(sh.out, "장바구니를 불러오지 못했습니다: %s\n", friendlyAPIError(err))
		return nil
	}
	sh.session.ReplaceCart(c)
	return nil
}

func (r *Runner) repl(ctx context.Context, sh *shell) error {
	reader := bufio.NewScanner(r.in)
	fmt.Fprintln(sh.out, "Shop companion (help: 명령어, exit: 종료)")

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(sh.out, "> ")
		if !reader.Scan() {
			return reader.Err()
		}

		quit, err := sh.exec(ctx, reader.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}
