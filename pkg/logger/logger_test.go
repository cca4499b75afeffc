package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/logger"
)

func decode(buf *bytes.Buffer) map[string]any {
	var parsed map[string]any
	Expect(json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed)).To(Succeed())
	return parsed
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

var _ = Describe("New", func() {
	It("writes text records at info level by default", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf))
		l.Info("harvest done", "stored", 3)
		l.Debug("hidden")

		Expect(buf.String()).To(ContainSubstring("harvest done"))
		Expect(buf.String()).To(ContainSubstring("stored=3"))
		Expect(buf.String()).NotTo(ContainSubstring("hidden"))
	})

	It("enables debug records", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithDebug(true))
		l.Debug("fact served")
		Expect(buf.String()).To(ContainSubstring("fact served"))
	})

	It("writes JSON for the daemon log", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true))
		l.Info("provider harvested", "provider", "til", "stored", 25)

		parsed := decode(&buf)
		Expect(parsed["msg"]).To(Equal("provider harvested"))
		Expect(parsed["provider"]).To(Equal("til"))
		Expect(parsed["stored"]).To(BeNumerically("==", 25))
	})

	It("adds the caller with WithSource", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true), logger.WithSource(true))
		l.Info("here")

		Expect(decode(&buf)).To(HaveKey(slog.SourceKey))
	})

	It("tags records with the component", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true), logger.WithComponent("scheduler"))
		l.Info("tick")

		Expect(decode(&buf)["component"]).To(Equal("scheduler"))
	})

	It("writes to several writers", func() {
		var buf1, buf2 bytes.Buffer
		l := logger.New(logger.WithWriter(&buf1, &buf2))
		l.Info("both")

		Expect(buf1.String()).To(ContainSubstring("both"))
		Expect(buf2.String()).To(ContainSubstring("both"))
	})

	It("filters debug on the pretty handler unless enabled", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithPretty(true))
		l.Debug("quiet")
		Expect(buf.String()).To(BeEmpty())

		l = logger.New(logger.WithWriter(&buf), logger.WithPretty(true), logger.WithDebug(true))
		l.Debug("loud")
		Expect(buf.String()).To(ContainSubstring("loud"))
	})
})

var _ = Describe("Nop", func() {
	It("is disabled at every level", func() {
		l := logger.Nop()
		Expect(l.Handler().Enabled(context.Background(), slog.LevelError)).To(BeFalse())
		Expect(func() { l.With("k", "v").WithGroup("g").Error("msg") }).NotTo(Panic())
	})
})

var _ = Describe("Multi", func() {
	It("sends each record to every logger", func() {
		var text, js bytes.Buffer
		multi := logger.Multi(
			logger.New(logger.WithWriter(&text)),
			logger.New(logger.WithWriter(&js), logger.WithJSON(true)),
		)
		multi.Info("daemon started", "pid", 42)

		Expect(text.String()).To(ContainSubstring("daemon started"))
		Expect(decode(&js)["pid"]).To(BeNumerically("==", 42))
	})

	It("respects each logger's level", func() {
		var quiet, loud bytes.Buffer
		multi := logger.Multi(
			logger.New(logger.WithWriter(&quiet)),
			logger.New(logger.WithWriter(&loud), logger.WithDebug(true)),
		)
		multi.Debug("details")

		Expect(quiet.String()).To(BeEmpty())
		Expect(loud.String()).To(ContainSubstring("details"))
	})

	It("keeps writing when one handler fails", func() {
		var buf bytes.Buffer
		multi := logger.Multi(
			logger.New(logger.WithWriter(failingWriter{}), logger.WithJSON(true)),
			logger.New(logger.WithWriter(&buf), logger.WithJSON(true)),
		)

		err := multi.Handler().Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still here", 0))
		Expect(err).To(MatchError(ContainSubstring("disk full")))
		Expect(decode(&buf)["msg"]).To(Equal("still here"))
	})

	It("carries attrs and groups to every handler", func() {
		var buf1, buf2 bytes.Buffer
		multi := logger.Multi(
			logger.New(logger.WithWriter(&buf1), logger.WithJSON(true)),
			logger.New(logger.WithWriter(&buf2), logger.WithJSON(true)),
		)
		multi.With("component", "api").WithGroup("request").Info("served", "path", "/ping")

		for _, buf := range []*bytes.Buffer{&buf1, &buf2} {
			parsed := decode(buf)
			Expect(parsed["component"]).To(Equal("api"))
			Expect(parsed["request"]).To(HaveKeyWithValue("path", "/ping"))
		}
	})
})
