package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"sort"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/example/spotlightdraw/internal/config"
	"github.com/example/spotlightdraw/internal/interaction"
	"github.com/example/spotlightdraw/internal/prefs"
)

type serveCmd struct {
	*root
	fs *flag.FlagSet

	addr       string
	background string
	prefsPath  string
	width      int
	height     int
	enable     bool
	quiet      bool
}

func parseServeCmd(args []string, r *root) (*serveCmd, error) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	s := &serveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	addr := config.DefaultHTTPAddr
	if r != nil && r.config != nil && r.config.HTTPAddr != "" {
		addr = r.config.HTTPAddr
	}
	fs.StringVar(&s.addr, "addr", addr, "listen address")
	fs.StringVar(&s.background, "background", "", "image drawn under the annotations")
	fs.StringVar(&s.prefsPath, "prefs", "", "preferences database (default from config)")
	fs.IntVar(&s.width, "width", defaultWidth, "surface width when no background is given")
	fs.IntVar(&s.height, "height", defaultHeight, "surface height when no background is given")
	fs.BoolVar(&s.enable, "enable", false, "start with drawing mode on")
	fs.BoolVar(&s.quiet, "quiet", false, "do not log requests")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: s}
	}
	return s, nil
}

func (s *serveCmd) Program() string {
	return s.root.Program() + " serve"
}

func (s *serveCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *serveCmd) Run() error {
	opts := sessionOptions{width: s.width, height: s.height, prefsPath: s.prefsPath, enabled: s.enable}
	if s.background != "" {
		img, err := decodeImageFile(s.background)
		if err != nil {
			return err
		}
		opts.backdrop = img
		opts.width, opts.height = img.Bounds().Dx(), img.Bounds().Dy()
	}
	sess := s.root.openSession(opts)
	defer sess.close()

	app := newServer(sess, !s.quiet)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("serve: shutdown: %v", err)
		}
	}()

	log.Printf("serve: listening on %s", s.addr)
	return app.Listen(s.addr)
}

// httpSession serializes request handling on one session.
type httpSession struct {
	mu   sync.Mutex
	sess *session
}

func newServer(sess *session, logRequests bool) *fiber.App {
	h := &httpSession{sess: sess}
	app := fiber.New(fiber.Config{
		AppName: "spotlightdraw",
	})

	app.Use(recover.New())
	if logRequests {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/state", h.state)
	app.Post("/toggle", h.toggle)
	app.Post("/events", h.events)
	app.Get("/preferences", h.getPreferences)
	app.Put("/preferences", h.putPreferences)
	app.Get("/image.png", h.image)
	return app
}

func badRequest(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func (h *httpSession) state(c fiber.Ctx) error {
	return c.JSON(h.sess.runner.Snapshot())
}

func (h *httpSession) toggle(c fiber.Ctx) error {
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(body, &msg); err != nil {
			return badRequest(c, err)
		}
		if msg.Type != interaction.ToggleMessage {
			return badRequest(c, errors.New("unsupported message type "+msg.Type))
		}
	}
	h.mu.Lock()
	on := h.sess.runner.Toggle()
	h.mu.Unlock()
	return c.JSON(fiber.Map{"enabled": on})
}

// events plays the request body as a script and returns its output with
// the resulting state.
func (h *httpSession) events(c fiber.Ctx) error {
	var out bytes.Buffer
	h.mu.Lock()
	err := h.sess.runner.Run(c.Context(), bytes.NewReader(c.Body()), &out)
	h.mu.Unlock()
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  err.Error(),
			"output": out.String(),
		})
	}
	return c.JSON(fiber.Map{
		"output": out.String(),
		"state":  h.sess.runner.Snapshot(),
	})
}

func (h *httpSession) getPreferences(c fiber.Ctx) error {
	p, err := prefs.Load(c.Context(), h.sess.prefs, prefs.Defaults())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	values := make(map[string]string, len(prefs.Keys))
	for _, k := range prefs.Keys {
		values[k], _ = p.Value(k)
	}
	return c.JSON(values)
}

// putPreferences validates every key before writing any of them.
func (h *httpSession) putPreferences(c fiber.Ctx) error {
	var values map[string]string
	if err := json.Unmarshal(c.Body(), &values); err != nil {
		return badRequest(c, err)
	}
	keys := make([]string, 0, len(values))
	var probe prefs.Preferences
	for k, v := range values {
		if err := probe.Apply(k, v); err != nil {
			return badRequest(c, err)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := prefs.Set(c.Context(), h.sess.prefs, k, values[k]); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return h.getPreferences(c)
}

func (h *httpSession) image(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.sess.canvas.EncodePNG(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}
