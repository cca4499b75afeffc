package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/cultura/pkg/facts"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RandomFactResponse is returned by POST /facts/random.
type RandomFactResponse struct {
	Fact string `json:"fact"`
}

// UpdateResponse is returned by POST /facts/update. Errors lists every
// provider and insert failure of the pass.
type UpdateResponse struct {
	Providers []string `json:"providers"`
	Errors    []string `json:"errors"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	stats, err := s.facts.Stats(c.Context())
	if err != nil {
		s.logger.Error("failed to get stats", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to get stats"})
	}

	return c.JSON(stats)
}

// handleRandom pops the newest unread fact. 204 means every fact was read.
func (s *Server) handleRandom(c *fiber.Ctx) error {
	text, ok, err := s.facts.GenerateRandom(c.Context())
	if err != nil {
		s.logger.Error("failed to generate random fact", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to get fact"})
	}
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.JSON(RandomFactResponse{Fact: text})
}

// handleUpdate harvests every configured provider. A partial failure
// answers 207 with the collected errors.
func (s *Server) handleUpdate(c *fiber.Ctx) error {
	resp := UpdateResponse{
		Providers: make([]string, 0, len(s.config.Providers)),
		Errors:    []string{},
	}
	for _, p := range s.config.Providers {
		resp.Providers = append(resp.Providers, p.ID())
	}

	err := s.facts.Update(c.Context(), s.config.Providers)
	if err == nil {
		return c.JSON(resp)
	}

	var updateErr *facts.UpdateError
	if !errors.As(err, &updateErr) {
		s.logger.Error("update failed", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	for _, e := range updateErr.Errors {
		resp.Errors = append(resp.Errors, e.Error())
	}
	return c.Status(fiber.StatusMultiStatus).JSON(resp)
}
