package nop_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/eventstream"
	"github.com/papercomputeco/cultura/pkg/eventstream/nop"
)

var _ = Describe("Publisher", func() {
	It("creates a non-nil publisher", func() {
		p := nop.NewPublisher()
		Expect(p).NotTo(BeNil())
	})

	It("returns ErrNilHarvestEvent for nil events", func() {
		p := nop.NewPublisher()
		err := p.PublishHarvest(context.Background(), nil)
		Expect(err).To(MatchError(eventstream.ErrNilHarvestEvent))
	})

	It("succeeds for non-nil events", func() {
		p := nop.NewPublisher()
		err := p.PublishHarvest(context.Background(), &eventstream.HarvestEvent{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("closes successfully", func() {
		p := nop.NewPublisher()
		Expect(p.Close()).To(Succeed())
	})
})
