package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iwneis/neishelper/core"
	"github.com/iwneis/neishelper/core/catalog"
)

const maxFAQSuggestions = 3

var nowFunc = time.Now // mockable

type catalogApi struct {
	catalog *catalog.Catalog
}

func registerCatalogAPI(g *echo.Group, c *catalog.Catalog) {
	api := catalogApi{catalog: c}

	g.GET("/overview", api.overview)
	g.GET("/periods", api.periods)
	g.GET("/categories", api.categories)
	g.GET("/schedules", api.schedules)
	g.GET("/schedules/:month", api.schedule)
	g.GET("/faqs", api.faqs)
	g.GET("/guides", api.guides)
	g.GET("/guides/:id", api.guide)
	g.GET("/resources", api.resources)
}

// Params

// periodParam reads ?period=, defaulting to the current period.
func periodParam(ctx echo.Context) (catalog.Period, error) {
	raw := core.CleanString(ctx.QueryParam("period"))
	if raw == "" {
		return catalog.CurrentPeriod(nowFunc()), nil
	}
	p, err := catalog.ParsePeriod(raw)
	if err != nil {
		return "", core.NewFieldValidationError("period", "unknown period")
	}
	return p, nil
}

func categoryParam(ctx echo.Context) (catalog.Category, error) {
	c, err := catalog.ParseCategory(core.CleanString(ctx.QueryParam("category")))
	if err != nil {
		return "", core.NewFieldValidationError("category", "unknown category")
	}
	return c, nil
}

// Handlers

func (api *catalogApi) overview(ctx echo.Context) error {
	now := nowFunc()
	period := catalog.CurrentPeriod(now)
	brief := api.catalog.Briefing(period)

	res := OverviewResponse{
		Year:        now.Year(),
		Month:       int(now.Month()),
		Period:      period,
		Label:       period.Label(),
		Description: brief.Description,
		Notices:     brief.Notices,
		Guides:      []GuideLink{},
	}
	for _, g := range api.catalog.RecommendedGuides(period) {
		res.Guides = append(res.Guides, GuideLink{ID: g.ID, Title: g.Title, Icon: g.Icon})
	}
	if s, ok := api.catalog.CurrentSchedule(now); ok {
		res.Tasks = len(s.Tasks)
		res.Summary = s.Summary()
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *catalogApi) periods(ctx echo.Context) error {
	all := append(append([]catalog.Period{}, catalog.ActivePeriods...), catalog.PeriodAlways)
	res := PeriodsResponse{
		Current: catalog.CurrentPeriod(nowFunc()),
		Periods: make([]PeriodResponse, 0, len(all)),
	}
	for _, p := range all {
		res.Periods = append(res.Periods, PeriodResponse{Period: p, Label: p.Label(), ShortLabel: p.ShortLabel()})
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *catalogApi) categories(ctx echo.Context) error {
	res := make([]CategoryResponse, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		res = append(res, CategoryResponse{Category: c, Label: c.Label()})
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *catalogApi) schedules(ctx echo.Context) error {
	schedules := api.catalog.Schedules()
	res := make([]ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		res = append(res, ScheduleResponse{MonthlySchedule: s, Summary: s.Summary()})
	}
	return ctx.JSON(http.StatusOK, res)
}

// schedule accepts a month number (1..12) or "current".
func (api *catalogApi) schedule(ctx echo.Context) error {
	month := int(nowFunc().Month())
	if raw := ctx.Param("month"); raw != "current" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return core.NewFieldValidationError("month", "month must be between 1 and 12")
		}
		month = m
	}

	s, ok := api.catalog.ScheduleForMonth(month)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, ScheduleResponse{MonthlySchedule: s, Summary: s.Summary()})
}

func (api *catalogApi) faqs(ctx echo.Context) error {
	cat, err := categoryParam(ctx)
	if err != nil {
		return err
	}
	q := ctx.QueryParam("q")

	res := FAQsResponse{
		Results:     api.catalog.SearchFAQs(q, cat),
		Suggestions: []catalog.FAQ{},
		Popular:     api.catalog.PopularFAQs(),
	}
	if len(res.Results) == 0 {
		res.Suggestions = api.catalog.SuggestFAQs(q, maxFAQSuggestions)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *catalogApi) guides(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.catalog.Guides())
}

func (api *catalogApi) guide(ctx echo.Context) error {
	g, err := api.catalog.Guide(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *catalogApi) resources(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.catalog.Resources())
}
