package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/facts"
	"github.com/papercomputeco/cultura/pkg/logger"
	"github.com/papercomputeco/cultura/pkg/storage/inmemory"
)

var _ = Describe("MCP Server", func() {
	var (
		ctx     context.Context
		driver  *inmemory.Driver
		service *facts.Service
		server  *Server
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = inmemory.NewDriver()

		var err error
		service, err = facts.NewService(facts.Config{Driver: driver})
		Expect(err).NotTo(HaveOccurred())

		server, err = NewServer(Config{Facts: service, Logger: logger.Nop()})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewServer", func() {
		It("returns an error when the fact service is nil", func() {
			_, err := NewServer(Config{Logger: logger.Nop()})
			Expect(err).To(MatchError(ContainSubstring("fact service is required")))
		})

		It("returns an error when logger is nil", func() {
			_, err := NewServer(Config{Facts: service})
			Expect(err).To(MatchError(ContainSubstring("logger is required")))
		})

		It("allows a noop server without dependencies", func() {
			s, err := NewServer(Config{Noop: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Handler()).NotTo(BeNil())
		})

		It("returns an HTTP handler", func() {
			Expect(server.Handler()).NotTo(BeNil())
		})
	})

	Describe("random_fact", func() {
		It("reports found=false on an empty store", func() {
			res, out, err := server.handleRandomFact(ctx, nil, RandomFactInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IsError).To(BeFalse())
			Expect(out.Found).To(BeFalse())
		})

		It("returns the newest unread fact and marks it read", func() {
			Expect(driver.Insert(ctx, "test", []string{"F1", "F2"})).To(Equal([]error{nil, nil}))

			_, out, err := server.handleRandomFact(ctx, nil, RandomFactInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(RandomFactOutput{Fact: "F2", Found: true}))

			_, out, err = server.handleRandomFact(ctx, nil, RandomFactInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Fact).To(Equal("F1"))
		})
	})

	Describe("fact_stats", func() {
		It("counts facts", func() {
			Expect(driver.Insert(ctx, "test", []string{"F1", "F2"})).To(Equal([]error{nil, nil}))
			_, _, err := server.handleRandomFact(ctx, nil, RandomFactInput{})
			Expect(err).NotTo(HaveOccurred())

			res, stats, err := server.handleFactStats(ctx, nil, FactStatsInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IsError).To(BeFalse())
			Expect(stats.Total).To(Equal(2))
			Expect(stats.Unread).To(Equal(1))
			Expect(stats.Read).To(Equal(1))
			Expect(stats.ByProvider).To(HaveKeyWithValue("test", 2))
		})
	})

	Describe("over a client session", func() {
		It("lists and calls the fact tools", func() {
			Expect(driver.Insert(ctx, "test", []string{"Honey never spoils."})).To(Equal([]error{nil}))

			serverTransport, clientTransport := sdk.NewInMemoryTransports()
			ss, err := server.mcpServer.Connect(ctx, serverTransport, nil)
			Expect(err).NotTo(HaveOccurred())
			defer ss.Close()

			client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
			cs, err := client.Connect(ctx, clientTransport, nil)
			Expect(err).NotTo(HaveOccurred())
			defer cs.Close()

			tools, err := cs.ListTools(ctx, &sdk.ListToolsParams{})
			Expect(err).NotTo(HaveOccurred())
			names := make([]string, 0, len(tools.Tools))
			for _, t := range tools.Tools {
				names = append(names, t.Name)
			}
			Expect(names).To(ConsistOf("random_fact", "fact_stats"))

			res, err := cs.CallTool(ctx, &sdk.CallToolParams{Name: "random_fact", Arguments: map[string]any{}})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IsError).To(BeFalse())
			Expect(res.Content).NotTo(BeEmpty())
			Expect(res.Content[0]).To(BeAssignableToTypeOf(&sdk.TextContent{}))
			Expect(res.Content[0].(*sdk.TextContent).Text).To(Equal("Honey never spoils."))
		})
	})
})
