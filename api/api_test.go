package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/facts"
	"github.com/papercomputeco/cultura/pkg/logger"
	"github.com/papercomputeco/cultura/pkg/provider"
	"github.com/papercomputeco/cultura/pkg/provider/static"
	"github.com/papercomputeco/cultura/pkg/storage"
	"github.com/papercomputeco/cultura/pkg/storage/inmemory"
)

type failingProvider struct{}

func (failingProvider) ID() string { return "broken" }

func (failingProvider) Facts(context.Context) ([]string, error) {
	return nil, errors.New("feed unavailable")
}

var _ = Describe("Server", func() {
	var (
		ctx     context.Context
		driver  *inmemory.Driver
		service *facts.Service
	)

	newServer := func(providers ...provider.Provider) *Server {
		s, err := NewServer(Config{ListenAddr: "127.0.0.1:0", Providers: providers}, service, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	do := func(s *Server, method, path string) *http.Response {
		resp, err := s.app.Test(httptest.NewRequest(method, path, nil), -1)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	decode := func(resp *http.Response, v any) {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(body, v)).To(Succeed())
	}

	BeforeEach(func() {
		ctx = context.Background()
		driver = inmemory.NewDriver()

		var err error
		service, err = facts.NewService(facts.Config{Driver: driver})
		Expect(err).NotTo(HaveOccurred())
	})

	It("requires a fact service", func() {
		_, err := NewServer(Config{}, nil, logger.Nop())
		Expect(err).To(MatchError("fact service is required"))
	})

	It("answers ping", func() {
		resp := do(newServer(), fiber.MethodGet, "/ping")
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

		var body string
		decode(resp, &body)
		Expect(body).To(Equal("pong"))
	})

	Describe("POST /facts/random", func() {
		It("returns 204 when there is no unread fact", func() {
			resp := do(newServer(), fiber.MethodPost, "/facts/random")
			Expect(resp.StatusCode).To(Equal(fiber.StatusNoContent))
		})

		It("returns the newest unread fact and marks it read", func() {
			Expect(driver.Insert(ctx, "test", []string{"F1", "F2"})).To(Equal([]error{nil, nil}))
			s := newServer()

			var body RandomFactResponse
			resp := do(s, fiber.MethodPost, "/facts/random")
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
			decode(resp, &body)
			Expect(body.Fact).To(Equal("F2"))

			resp = do(s, fiber.MethodPost, "/facts/random")
			decode(resp, &body)
			Expect(body.Fact).To(Equal("F1"))

			resp = do(s, fiber.MethodPost, "/facts/random")
			Expect(resp.StatusCode).To(Equal(fiber.StatusNoContent))
		})
	})

	Describe("GET /facts/stats", func() {
		It("returns store statistics", func() {
			Expect(driver.Insert(ctx, "test", []string{"F1", "F2"})).To(Equal([]error{nil, nil}))

			resp := do(newServer(), fiber.MethodGet, "/facts/stats")
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var stats storage.Stats
			decode(resp, &stats)
			Expect(stats.Total).To(Equal(2))
			Expect(stats.Unread).To(Equal(2))
			Expect(stats.ByProvider).To(HaveKeyWithValue("test", 2))
		})
	})

	Describe("POST /facts/update", func() {
		It("harvests the configured providers", func() {
			s := newServer(static.New("static", "Octopuses have three hearts."))

			resp := do(s, fiber.MethodPost, "/facts/update")
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var body UpdateResponse
			decode(resp, &body)
			Expect(body.Providers).To(Equal([]string{"static"}))
			Expect(body.Errors).To(BeEmpty())

			f, err := driver.NextUnread(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Text).To(Equal("Octopuses have three hearts."))
		})

		It("answers 207 with every collected error", func() {
			s := newServer(failingProvider{}, static.New("static", "Bananas are berries."))

			resp := do(s, fiber.MethodPost, "/facts/update")
			Expect(resp.StatusCode).To(Equal(fiber.StatusMultiStatus))

			var body UpdateResponse
			decode(resp, &body)
			Expect(body.Errors).To(HaveLen(1))
			Expect(body.Errors[0]).To(ContainSubstring("feed unavailable"))

			stats, err := driver.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Total).To(Equal(1))
		})
	})

	Describe("/mcp", func() {
		It("is mounted unless disabled", func() {
			req := httptest.NewRequest(fiber.MethodPost, "/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json, text/event-stream")

			resp, err := newServer().app.Test(req, -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).NotTo(Equal(fiber.StatusNotFound))

			s, err := NewServer(Config{DisableMCP: true}, service, logger.Nop())
			Expect(err).NotTo(HaveOccurred())
			resp = do(s, fiber.MethodPost, "/mcp")
			Expect(resp.StatusCode).To(Equal(fiber.StatusNotFound))
		})
	})
})
