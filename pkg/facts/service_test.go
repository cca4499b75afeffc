package facts_test

import (
	"bytes"
	"context"
	"errors"

	"github.com/muesli/termenv"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/facts"
	"github.com/papercomputeco/cultura/pkg/formatter"
	"github.com/papercomputeco/cultura/pkg/logger"
	"github.com/papercomputeco/cultura/pkg/provider"
	"github.com/papercomputeco/cultura/pkg/provider/static"
	"github.com/papercomputeco/cultura/pkg/storage"
	"github.com/papercomputeco/cultura/pkg/storage/inmemory"
)

var _ = Describe("Service", func() {
	var (
		ctx       context.Context
		driver    *faultyDriver
		publisher *recordingPublisher
		svc       *facts.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = &faultyDriver{Driver: inmemory.NewDriver()}
		publisher = &recordingPublisher{}

		var err error
		svc, err = facts.NewService(facts.Config{
			Driver:    driver,
			Formatter: formatter.New("$fact", formatter.WithProfile(termenv.Ascii)),
			Logger:    logger.Nop(),
			Publisher: publisher,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("requires a driver", func() {
		_, err := facts.NewService(facts.Config{})
		Expect(err).To(MatchError(ContainSubstring("storage driver")))
	})

	Describe("Update", func() {
		It("stores normalized facts from every provider", func() {
			err := svc.Update(ctx, []provider.Provider{
				static.New("til", "Today I learned  something (via bbc)"),
				static.New("dyk", "Do you know this?"),
			})
			Expect(err).NotTo(HaveOccurred())

			stats, err := svc.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Total).To(Equal(2))
			Expect(stats.ByProvider).To(Equal(map[string]int{"til": 1, "dyk": 1}))

			list, err := svc.List(ctx, storage.ListOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(ContainElement(HaveField("Text", "Today I learned something")))
		})

		It("deduplicates facts across updates", func() {
			p := static.New("til", "repeat")
			Expect(svc.Update(ctx, []provider.Provider{p})).To(Succeed())
			Expect(svc.Update(ctx, []provider.Provider{p})).To(Succeed())

			stats, err := svc.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Total).To(Equal(1))
		})

		It("keeps harvesting when one provider fails", func() {
			boom := errors.New("unreachable")
			err := svc.Update(ctx, []provider.Provider{
				failingProvider{id: "broken", err: boom},
				static.New("til", "still stored"),
			})

			var updateErr *facts.UpdateError
			Expect(errors.As(err, &updateErr)).To(BeTrue())
			Expect(updateErr.Errors).To(HaveLen(1))
			Expect(errors.Is(err, boom)).To(BeTrue())

			var providerErr provider.Error
			Expect(errors.As(err, &providerErr)).To(BeTrue())
			Expect(providerErr.ProviderID).To(Equal("broken"))

			text, ok, err := svc.GenerateRandom(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(text).To(Equal("still stored"))
		})

		It("collects every insert failure", func() {
			driver.insertErr = errors.New("disk full")
			err := svc.Update(ctx, []provider.Provider{static.New("til", "a", "b")})

			var updateErr *facts.UpdateError
			Expect(errors.As(err, &updateErr)).To(BeTrue())
			Expect(updateErr.Errors).To(HaveLen(2))

			var storageErr storage.Error
			Expect(errors.As(err, &storageErr)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("2 errors"))
		})

		It("publishes one event per successful provider", func() {
			err := svc.Update(ctx, []provider.Provider{
				static.New("til", "a"),
				failingProvider{id: "broken", err: errors.New("x")},
			})
			Expect(err).To(HaveOccurred())
			Expect(publisher.providers()).To(Equal([]string{"til"}))
			Expect(publisher.events[0].Stored).To(Equal(1))
		})

		It("does not fail on publish errors", func() {
			publisher.err = errors.New("broker down")
			Expect(svc.Update(ctx, []provider.Provider{static.New("til", "a")})).To(Succeed())
		})

		It("does nothing without providers", func() {
			Expect(svc.Update(ctx, nil)).To(Succeed())
		})
	})

	Describe("GenerateRandom", func() {
		It("serves the newest fact first and each fact once", func() {
			Expect(svc.Update(ctx, []provider.Provider{static.New("til", "F1")})).To(Succeed())
			Expect(svc.Update(ctx, []provider.Provider{static.New("til", "F2")})).To(Succeed())

			text, ok, err := svc.GenerateRandom(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(text).To(Equal("F2"))

			text, ok, err = svc.GenerateRandom(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(text).To(Equal("F1"))

			_, ok, err = svc.GenerateRandom(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("does not return a fact it could not mark as read", func() {
			Expect(svc.Update(ctx, []provider.Provider{static.New("til", "retry me")})).To(Succeed())

			driver.markErr = errors.New("locked")
			text, ok, err := svc.GenerateRandom(ctx)
			Expect(err).To(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(text).To(BeEmpty())

			driver.markErr = nil
			text, ok, err = svc.GenerateRandom(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(text).To(Equal("retry me"))
		})

		It("propagates selection errors", func() {
			driver.nextUnreadErr = errors.New("corrupt")
			_, _, err := svc.GenerateRandom(ctx)
			Expect(err).To(MatchError(ContainSubstring("corrupt")))
		})
	})

	Describe("PrintRandom", func() {
		It("writes the rendered fact and a newline", func() {
			Expect(svc.Update(ctx, []provider.Provider{static.New("til", "printed")})).To(Succeed())

			var buf bytes.Buffer
			Expect(svc.PrintRandom(ctx, &buf)).To(Succeed())
			Expect(buf.String()).To(Equal("printed\n"))
		})

		It("uses the configured template", func() {
			styled, err := facts.NewService(facts.Config{
				Driver:    driver,
				Formatter: formatter.New("$fact:red"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(styled.Update(ctx, []provider.Provider{static.New("til", "x")})).To(Succeed())

			var buf bytes.Buffer
			Expect(styled.PrintRandom(ctx, &buf)).To(Succeed())
			Expect(buf.String()).To(Equal("\x1b[31mx\x1b[0m\n"))
		})

		It("writes nothing when no fact is left", func() {
			var buf bytes.Buffer
			Expect(svc.PrintRandom(ctx, &buf)).To(Succeed())
			Expect(buf.Len()).To(BeZero())
		})
	})

	Describe("Reset", func() {
		It("empties the store", func() {
			Expect(svc.Update(ctx, []provider.Provider{static.New("til", "a")})).To(Succeed())
			Expect(svc.Reset(ctx)).To(Succeed())

			stats, err := svc.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Total).To(BeZero())
		})
	})
})
