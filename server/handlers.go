package server

import (
	"fmt"
	"net/http"

	"github.com/alexshd/fuzzy"
	"github.com/gin-gonic/gin"
)

// maxValues bounds the batch size of a single evaluate request.
const maxValues = 10_000

type evaluateRequest struct {
	Value  *float64  `json:"value"`
	Values []float64 `json:"values"`
}

type evaluation struct {
	X      float64            `json:"x"`
	Label  string             `json:"label"`
	Degree float64            `json:"degree"`
	Trace  []fuzzy.TraceEntry `json:"trace,omitempty"`
}

type evaluateResponse struct {
	Ruleset string       `json:"ruleset"`
	Results []evaluation `json:"results"`
}

func (s *Server) handleList(c *gin.Context) {
	infos, err := s.catalog.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rulesets": infos})
}

func (s *Server) handleDescribe(c *gin.Context) {
	entry, err := s.catalog.Get(c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry.Definition)
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", ErrInvalidInput, err))
		return
	}

	xs := req.Values
	if req.Value != nil {
		xs = append([]float64{*req.Value}, xs...)
	}
	switch {
	case len(xs) == 0:
		s.fail(c, fmt.Errorf("%w: provide value or values", ErrInvalidInput))
		return
	case len(xs) > maxValues:
		s.fail(c, fmt.Errorf("%w: at most %d values per request", ErrInvalidInput, maxValues))
		return
	}

	entry, err := s.catalog.Get(c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}

	samples, err := fuzzy.Sweep(c.Request.Context(), entry.Engine, xs, fuzzy.DefaultSweepConfig())
	if err != nil {
		s.fail(c, err)
		return
	}

	withTrace := c.DefaultQuery("trace", "true") != "false"
	resp := evaluateResponse{
		Ruleset: entry.Definition.Name,
		Results: make([]evaluation, len(samples)),
	}
	for i, smp := range samples {
		ev := evaluation{X: smp.X, Label: smp.Result.Label, Degree: smp.Result.Degree}
		if withTrace {
			ev.Trace = smp.Result.Trace
		}
		resp.Results[i] = ev
	}

	c.JSON(http.StatusOK, resp)
}
