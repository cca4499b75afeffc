package wikipedia_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/provider/wikipedia"
)

const page = `<html><body>
<ul><li>... that this is outside the content?</li></ul>
<div id="mw-content-text">
  <ul>
    <li>... that the <b>okapi</b> is related to the giraffe?</li>
    <li>Archive navigation</li>
    <li>... that honey never spoils?</li>
  </ul>
</div>
</body></html>`

var _ = Describe("Provider", func() {
	It("defaults its id to dyk", func() {
		Expect(wikipedia.New(wikipedia.Config{}).ID()).To(Equal("dyk"))
	})

	It("keeps ellipsis items from the content area", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(page))
		}))
		defer server.Close()

		p := wikipedia.New(wikipedia.Config{URL: server.URL, Client: server.Client()})
		facts, err := p.Facts(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(facts).To(Equal([]string{
			"Do you know that the okapi is related to the giraffe?",
			"Do you know that honey never spoils?",
		}))
	})

	It("fails on a non-OK status", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		p := wikipedia.New(wikipedia.Config{URL: server.URL, Client: server.Client()})
		_, err := p.Facts(context.Background())
		Expect(err).To(MatchError(ContainSubstring("unexpected status")))
	})

	It("honors context cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := wikipedia.New(wikipedia.Config{URL: "http://127.0.0.1:1"})
		_, err := p.Facts(ctx)
		Expect(err).To(HaveOccurred())
	})
})
