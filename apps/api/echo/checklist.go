package echoapi

import (
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iwneis/neishelper/core/catalog"
	"github.com/iwneis/neishelper/core/checklist"
)

type checklistApi struct {
	svc        *checklist.Service
	catalog    *catalog.Catalog
	validate   *validator.Validate
	translator ut.Translator
}

var proxyAllowMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", ")

// registerChecklistProxy mounts the key-value endpoint used by the checklist clients.
// Every response is open to any origin, whether or not the request carries an Origin header.
func registerChecklistProxy(g *echo.Group, api checklistApi) {
	g.GET("", api.get, proxyCORS)
	g.POST("", api.save, proxyCORS)
	g.OPTIONS("", func(ctx echo.Context) error { return ctx.NoContent(http.StatusNoContent) }, proxyCORS)
}

// isChecklistProxy reports whether the matched route belongs to the key-value endpoint.
func isChecklistProxy(ctx echo.Context) bool {
	p := ctx.Path()
	return p == "/checklist" || p == "/api/checklist"
}

func proxyCORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		h := ctx.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		h.Set(echo.HeaderAccessControlAllowMethods, proxyAllowMethods)
		h.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)
		return next(ctx)
	}
}

func registerChecklistAPI(g *echo.Group, api checklistApi) {
	cg := g.Group("/checklist")
	cg.GET("/items", api.items)
	cg.GET("/progress", api.progress)
}

// Handlers

func (api *checklistApi) get(ctx echo.Context) error {
	blob, found, err := api.svc.Get(ctx.Request().Context(), ctx.QueryParam("userId"))
	if err != nil {
		return errors.Wrap(err, "getting checklist")
	}

	var res GetChecklistResponse
	if found {
		res.Data = &blob
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *checklistApi) save(ctx echo.Context) error {
	var data SaveChecklistRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveChecklistRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.Put(ctx.Request().Context(), data.UserID, data.Data); err != nil {
		return errors.Wrap(err, "saving checklist")
	}
	return ctx.JSON(http.StatusOK, SaveChecklistResponse{Success: true})
}

func (api *checklistApi) items(ctx echo.Context) error {
	period, err := periodParam(ctx)
	if err != nil {
		return err
	}
	category, err := categoryParam(ctx)
	if err != nil {
		return err
	}

	items := catalog.FilterByCategory(api.catalog.ItemsForPeriod(period), category)
	return ctx.JSON(http.StatusOK, ItemsResponse{
		Period: period,
		Label:  period.Label(),
		Groups: catalog.GroupByCategory(items),
	})
}

func (api *checklistApi) progress(ctx echo.Context) error {
	report, err := api.svc.Progress(ctx.Request().Context(), api.catalog, ctx.QueryParam("userId"))
	if err != nil {
		return errors.Wrap(err, "computing progress")
	}
	return ctx.JSON(http.StatusOK, report)
}
