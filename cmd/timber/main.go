package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/jezek/xgb"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/thejerf/suture/v4"
	"github.com/timberwm/timber/internal/build"
	"github.com/timberwm/timber/internal/bus"
	"github.com/timberwm/timber/internal/config"
	"github.com/timberwm/timber/internal/control"
	"github.com/timberwm/timber/internal/wm"
	"github.com/timberwm/timber/internal/xscene"
	"github.com/timberwm/timber/pkg/sutureext"
)

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Listen string `doc:"control listen address, overrides config"`
	Config string `doc:"config file" default:".timber.yaml"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			bus.SetContext(ctx)

			configFilePath, err := filepath.Abs(options.Config)
			if err != nil {
				return err
			}

			store, err := config.NewStore(config.NewYAML(configFilePath))
			if err != nil {
				return err
			}
			if err := config.Normalize(store); err != nil {
				return err
			}
			cfg, err := store.GetConfig()
			if err != nil {
				return err
			}
			if options.Debug {
				slog.Debug("loaded config", "config", pp.Sprint(cfg))
			}

			listen := cfg.Listen
			if options.Listen != "" {
				listen = options.Listen
			}

			bindings, err := cfg.RuntimeBindings()
			if err != nil {
				return err
			}

			conn, err := xgb.NewConn()
			if err != nil {
				return err
			}
			defer conn.Close()

			var loop *wm.Loop
			xs, err := xscene.New(conn, cfg.BorderWidth, func(m wm.Msg) { loop.Post(m) })
			if err != nil {
				return err
			}

			server := wm.NewServer(xs, wm.Options{BorderWidth: cfg.BorderWidth})
			server.Bindings().Replace(bindings)
			loop = wm.NewLoop(server)

			hub := bus.NewHub[wm.EventStateChanged]().Register()
			dispatch := func(req wm.Request) (string, error) {
				replyC := make(chan wm.CommandReply, 1)
				loop.Post(wm.CommandMsg{Req: req, ReplyC: replyC})
				reply := <-replyC
				return reply.Report, reply.Err
			}

			super := sutureext.NewSimple("timber")
			super.Add(loop)
			super.Add(xs)
			super.Add(control.NewServer(listen, dispatch, hub))
			super.Add(sutureext.NewServiceFunc("config.Watch", func(ctx context.Context) error {
				return config.Watch(ctx, store, configFilePath, func(cfg config.Config) {
					bindings, err := cfg.RuntimeBindings()
					if err != nil {
						slog.Error("Ignoring invalid bindings", "error", err)
						return
					}
					loop.Post(wm.BindingsReplacedMsg{Bindings: bindings})
				})
			}))

			err = super.Serve(ctx)
			if errors.Is(err, suture.ErrTerminateSupervisorTree) {
				return nil
			}
			return err
		})
	})

	cli.Root().Version = build.Current.Version

	cli.Run()
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
