package server

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"daily-meal-planner/internal/plan"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const defaultKcal = 2000

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.Static("/static", s.store.Root())

	e.GET("/", s.handleRoot)
	e.GET("/health", s.handleHealth)
	e.POST("/meal_plan", s.handleMealPlan)
	e.GET("/meal_plan_html/:meal_name", s.handleMealPlanHTML)

	return e
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "AI Daily Meal Planner API. POST to /meal_plan.",
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// handleMealPlan generates a full daily plan plus an image and audio
// rendition per meal.
func (s *Server) handleMealPlan(c echo.Context) error {
	var req plan.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Ingredients) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ingredients is required")
	}
	if req.Kcal < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "kcal must be positive")
	}
	if req.Kcal == 0 {
		req.Kcal = defaultKcal
	}

	baseURL := c.Scheme() + "://" + c.Request().Host + "/"

	result, err := s.planner.GeneratePlan(c.Request().Context(), req, baseURL)
	if err != nil {
		s.log.Error().Err(err).Str("ingredients", req.Ingredients).Msg("meal plan request failed")
		switch {
		case errors.Is(err, plan.ErrGenerationFailed):
			return echo.NewHTTPError(http.StatusInternalServerError, "Meal plan generation failed.")
		case errors.Is(err, plan.ErrEmptyPlan):
			return echo.NewHTTPError(http.StatusInternalServerError, "Meal plan from the model was empty or badly formatted.")
		case errors.Is(err, plan.ErrAssetGeneration):
			return echo.NewHTTPError(http.StatusInternalServerError, "Meal asset generation failed.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal error.")
	}

	s.log.Info().Int("meals", len(result.Meals)).Msg("meal plan generated")
	return c.JSON(http.StatusOK, result)
}

// handleMealPlanHTML renders the persisted recipe for one canonical meal
// as an HTML page embedding its image and audio.
func (s *Server) handleMealPlanHTML(c echo.Context) error {
	slot, ok := plan.SlotFromName(c.Param("meal_name"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "meal name must be breakfast, lunch, or dinner")
	}

	name := string(slot)
	text, err := s.store.LoadRecipeText(name)
	if err != nil {
		if os.IsNotExist(err) {
			return echo.NewHTTPError(http.StatusNotFound, "no recipe has been generated yet for "+name)
		}
		return err
	}

	page, err := renderMealPage(name, text)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, page)
}
