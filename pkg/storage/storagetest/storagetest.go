// Package storagetest holds the behavior shared by every storage.Driver,
// registered as ginkgo specs so each driver package can run it.
package storagetest

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/storage"
)

// DescribeDriver registers the driver contract specs. newDriver is called
// before each test and must return an empty store.
func DescribeDriver(newDriver func(ctx context.Context) storage.Driver) bool {
	return Describe("storage.Driver contract", func() {
		var (
			driver storage.Driver
			ctx    context.Context
		)

		BeforeEach(func() {
			ctx = context.Background()
			driver = newDriver(ctx)
		})

		AfterEach(func() {
			if driver != nil {
				driver.Close()
			}
		})

		Describe("Insert", func() {
			It("stores each text as an unread fact", func() {
				errs := driver.Insert(ctx, "til", []string{"one", "two"})
				Expect(errs).To(HaveLen(2))
				Expect(errs).To(HaveEach(BeNil()))

				facts, err := driver.List(ctx, storage.ListOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(facts).To(HaveLen(2))
				for _, f := range facts {
					Expect(f.ID).NotTo(BeEmpty())
					Expect(f.ProviderID).To(Equal("til"))
					Expect(f.Displayed).To(BeFalse())
					Expect(f.CreatedAt.IsZero()).To(BeFalse())
				}
			})

			It("ignores duplicate texts", func() {
				Expect(driver.Insert(ctx, "til", []string{"same"})).To(HaveEach(BeNil()))
				Expect(driver.Insert(ctx, "dyk", []string{"same", "same"})).To(HaveEach(BeNil()))

				stats, err := driver.Stats(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.Total).To(Equal(1))
				Expect(stats.ByProvider).To(Equal(map[string]int{"til": 1}))
			})

			It("does not reset the read flag of a duplicate", func() {
				driver.Insert(ctx, "til", []string{"seen"})
				f, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(driver.MarkAsRead(ctx, f.ID)).To(Succeed())

				driver.Insert(ctx, "til", []string{"seen"})

				f, err = driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(f).To(BeNil())
			})

			It("reports blank texts without failing the rest of the batch", func() {
				errs := driver.Insert(ctx, "til", []string{"good", "  ", "also good"})
				Expect(errs[0]).NotTo(HaveOccurred())
				Expect(errors.Is(errs[1], storage.ErrEmptyFact)).To(BeTrue())
				Expect(errs[2]).NotTo(HaveOccurred())

				var storageErr storage.Error
				Expect(errors.As(errs[1], &storageErr)).To(BeTrue())
				Expect(storageErr.Op).To(Equal("insert"))

				stats, err := driver.Stats(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.Total).To(Equal(2))
			})

			It("accepts an empty batch", func() {
				Expect(driver.Insert(ctx, "til", nil)).To(BeEmpty())
			})
		})

		Describe("NextUnread", func() {
			It("returns nil on an empty store", func() {
				f, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(f).To(BeNil())
			})

			It("returns the most recently inserted unread fact first", func() {
				driver.Insert(ctx, "til", []string{"F1"})
				driver.Insert(ctx, "til", []string{"F2"})

				f, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(f.Text).To(Equal("F2"))
				Expect(driver.MarkAsRead(ctx, f.ID)).To(Succeed())

				f, err = driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(f.Text).To(Equal("F1"))
				Expect(driver.MarkAsRead(ctx, f.ID)).To(Succeed())

				f, err = driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(f).To(BeNil())
			})

			It("orders facts from a single batch by insertion", func() {
				driver.Insert(ctx, "til", []string{"first", "second", "third"})

				f, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(f.Text).To(Equal("third"))
			})

			It("does not mark the fact as read", func() {
				driver.Insert(ctx, "til", []string{"sticky"})

				first, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				second, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(second.ID).To(Equal(first.ID))
			})
		})

		Describe("MarkAsRead", func() {
			It("is idempotent", func() {
				driver.Insert(ctx, "til", []string{"x"})
				f, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())

				Expect(driver.MarkAsRead(ctx, f.ID)).To(Succeed())
				Expect(driver.MarkAsRead(ctx, f.ID)).To(Succeed())

				stats, err := driver.Stats(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.Read).To(Equal(1))
				Expect(stats.Unread).To(Equal(0))
			})

			It("ignores unknown ids", func() {
				Expect(driver.MarkAsRead(ctx, "does-not-exist")).To(Succeed())
			})
		})

		Describe("List", func() {
			BeforeEach(func() {
				driver.Insert(ctx, "til", []string{"a"})
				driver.Insert(ctx, "dyk", []string{"b"})
				driver.Insert(ctx, "til", []string{"c"})
			})

			It("lists most recent first", func() {
				facts, err := driver.List(ctx, storage.ListOptions{})
				Expect(err).NotTo(HaveOccurred())
				Expect(texts(facts...)).To(Equal([]string{"c", "b", "a"}))
			})

			It("honors the limit", func() {
				facts, err := driver.List(ctx, storage.ListOptions{Limit: 2})
				Expect(err).NotTo(HaveOccurred())
				Expect(texts(facts...)).To(Equal([]string{"c", "b"}))
			})

			It("filters read facts", func() {
				f, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(driver.MarkAsRead(ctx, f.ID)).To(Succeed())

				facts, err := driver.List(ctx, storage.ListOptions{UnreadOnly: true})
				Expect(err).NotTo(HaveOccurred())
				Expect(texts(facts...)).To(Equal([]string{"b", "a"}))
			})
		})

		Describe("Stats", func() {
			It("counts facts per state and provider", func() {
				driver.Insert(ctx, "til", []string{"a", "b"})
				driver.Insert(ctx, "dyk", []string{"c"})
				f, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(driver.MarkAsRead(ctx, f.ID)).To(Succeed())

				stats, err := driver.Stats(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.Total).To(Equal(3))
				Expect(stats.Read).To(Equal(1))
				Expect(stats.Unread).To(Equal(2))
				Expect(stats.ByProvider).To(Equal(map[string]int{"til": 2, "dyk": 1}))
			})
		})

		Describe("Reset", func() {
			It("removes every fact", func() {
				driver.Insert(ctx, "til", []string{"a", "b"})
				Expect(driver.Reset(ctx)).To(Succeed())

				stats, err := driver.Stats(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.Total).To(Equal(0))

				f, err := driver.NextUnread(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(f).To(BeNil())
			})
		})
	})
}
