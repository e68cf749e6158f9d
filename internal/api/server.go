// Package api exposes the family registry and model building over HTTP.
// Built models are described, stored and returned as summaries; nothing
// here runs inference.
package api

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/glmkit/internal/logger"
	"github.com/samcharles93/glmkit/internal/modelspec"
	"github.com/samcharles93/glmkit/pkg/glm"
	"github.com/samcharles93/glmkit/pkg/model"
)

// maxSpecBytes bounds the POST /v1/models request body.
const maxSpecBytes = 8 << 20

type Server struct {
	store *ModelStore
	log   logger.Logger
	clock func() time.Time
}

func NewServer(store *ModelStore, log logger.Logger) *Server {
	return &Server{
		store: store,
		log:   log,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/families", s.handleListFamilies)
	e.GET("/v1/families/:name", s.handleGetFamily)

	e.POST("/v1/models", s.handleBuildModel)
	e.GET("/v1/models", s.handleListModels)
	e.GET("/v1/models/:id", s.handleGetModel)
	e.DELETE("/v1/models/:id", s.handleDeleteModel)
}

func familySummary(f *glm.Family, describe bool) FamilySummary {
	priors := make(map[string]string, len(f.Priors))
	for key, prior := range f.Priors {
		priors[key] = prior.String()
	}
	summary := FamilySummary{
		Name:       f.Name,
		Likelihood: string(f.Likelihood),
		Parent:     f.Parent,
		Link:       f.Link.Name,
		Priors:     priors,
	}
	if describe {
		summary.Description = f.Describe()
	}
	return summary
}

func (s *Server) handleListFamilies(c *echo.Context) error {
	names := glm.Names()
	data := make([]FamilySummary, 0, len(names))
	for _, name := range names {
		f, err := glm.New(name, glm.Config{})
		if err != nil {
			return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "")
		}
		data = append(data, familySummary(f, false))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"object": "list",
		"data":   data,
	})
}

func (s *Server) handleGetFamily(c *echo.Context) error {
	name := c.Param("name")
	f, err := glm.New(name, glm.Config{})
	if err != nil {
		return writeNotFound(c, err.Error())
	}
	return c.JSON(http.StatusOK, familySummary(f, true))
}

func (s *Server) handleBuildModel(c *echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxSpecBytes))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	spec, err := modelspec.ParseJSON(body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	m, lm, err := spec.Build(s.log)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	summary := &ModelSummary{
		ID:        "model_" + uuid.NewString(),
		Object:    "model",
		Name:      m.Name(),
		Family:    spec.Family,
		CreatedAt: s.clock().Unix(),
		Labels:    lm.Labels,
		Variables: variableSummaries(m),
	}
	s.store.Put(summary)
	s.log.Info("built model", "id", summary.ID, "family", summary.Family, "variables", len(summary.Variables))
	return c.JSON(http.StatusOK, summary)
}

func variableSummaries(m *model.Model) []VariableSummary {
	vars := m.Vars()
	out := make([]VariableSummary, 0, len(vars))
	for _, rv := range vars {
		out = append(out, VariableSummary{
			Name:         rv.Name,
			Dist:         string(rv.Dist),
			Summary:      rv.Summary(),
			Observed:     rv.IsObserved(),
			Observations: len(rv.Observed),
		})
	}
	return out
}

func (s *Server) handleListModels(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"object": "list",
		"data":   s.store.List(),
	})
}

func (s *Server) handleGetModel(c *echo.Context) error {
	id := c.Param("id")
	summary, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, "no model with id "+id)
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleDeleteModel(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "no model with id "+id)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":      id,
		"object":  "model",
		"deleted": true,
	})
}
