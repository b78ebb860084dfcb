// Package pricing exposes the price resolution HTTP endpoints.
package pricing

import (
	"context"
	"time"

	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/amirasaad/brokerage/pkg/pricing/core"
	"github.com/amirasaad/brokerage/pkg/repository/pricerule"
	"github.com/amirasaad/brokerage/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// PriceService is the resolution surface the handlers depend on.
type PriceService interface {
	Price(ctx context.Context, from, to core.Currency, validity core.Validity) (price.Price, error)
	PriceAt(ctx context.Context, from, to core.Currency, date time.Time) (price.Price, error)
	PriceFrom(ctx context.Context, source core.PriceSource, asset, reference, param string) (price.Price, error)
	UpdatePrices(ctx context.Context) error
}

// Routes registers HTTP routes for price resolution and rule management.
func Routes(app *fiber.App, svc PriceService, rules pricerule.Repository) {
	priceGroup := app.Group("/api/prices")

	priceGroup.Get("/", GetPrice(svc))
	priceGroup.Get("/historical", GetHistoricalPrice(svc))

	adminGroup := priceGroup.Group("/admin")
	adminGroup.Post("/update", TriggerUpdate(svc))
	adminGroup.Get("/source/:source", GetPriceFromSource(svc))
	adminGroup.Post("/rules", UpsertRule(rules))
}

// GetPrice resolves the current price between two currencies.
// @Summary Resolve a price
// @Description Resolve the current price between two configured currencies
// @Tags prices
// @Produce json
// @Param fromId query int true "Source currency id"
// @Param fromSymbol query string true "Source currency symbol"
// @Param fromKind query string true "Source currency kind (fiat or asset)"
// @Param toId query int true "Target currency id"
// @Param toSymbol query string true "Target currency symbol"
// @Param toKind query string true "Target currency kind (fiat or asset)"
// @Param validity query string false "Validity mode (any, prefer-valid, valid-only)"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/prices [get]
func GetPrice(svc PriceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := common.BindQueryAndValidate[PriceQuery](c)
		if err != nil {
			return nil // Error already written
		}

		validity, err := core.ParseValidity(query.Validity)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid validity mode", err.Error())
		}

		p, err := svc.Price(c.Context(), query.from(), query.to(), validity)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to resolve price", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Price resolved successfully", p)
	}
}

// GetHistoricalPrice resolves the price between two currencies on a past day.
// @Summary Resolve a historical price
// @Description Resolve the price between two currencies on a recorded day
// @Tags prices
// @Produce json
// @Param date query string true "Snapshot day (YYYY-MM-DD)"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/prices/historical [get]
func GetHistoricalPrice(svc PriceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := common.BindQueryAndValidate[HistoricalQuery](c)
		if err != nil {
			return nil // Error already written
		}

		date, err := time.Parse("2006-01-02", query.Date)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid date", err.Error())
		}

		p, err := svc.PriceAt(c.Context(), query.from(), query.to(), date)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to resolve historical price", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Historical price resolved successfully", p)
	}
}

// TriggerUpdate refreshes every persisted rule.
// @Summary Trigger a price update sweep
// @Description Refresh the price of every persisted rule
// @Tags prices
// @Produce json
// @Success 202 {object} common.Response
// @Failure 500 {object} common.ProblemDetails
// @Router /api/prices/admin/update [post]
func TriggerUpdate(svc PriceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.UpdatePrices(c.Context()); err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to update prices", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Price update completed", nil)
	}
}

// GetPriceFromSource queries one provider directly, bypassing rules.
// @Summary Query a price source directly
// @Description Fetch a raw quote from a single provider
// @Tags prices
// @Produce json
// @Param source path string true "Price source name"
// @Param asset query string true "Asset symbol"
// @Param reference query string true "Reference symbol"
// @Param param query string false "Provider-specific parameter"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/prices/admin/source/{source} [get]
func GetPriceFromSource(svc PriceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		source := c.Params("source")
		if source == "" {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Price source is required", nil)
		}

		query, err := common.BindQueryAndValidate[SourceQuery](c)
		if err != nil {
			return nil // Error already written
		}

		p, err := svc.PriceFrom(c.Context(), core.PriceSource(source), query.Asset, query.Reference, query.Param)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to query price source", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Price fetched successfully", p)
	}
}

// UpsertRule creates or replaces a price rule.
// @Summary Upsert a price rule
// @Description Create or replace the price rule for a currency
// @Tags prices
// @Accept json
// @Produce json
// @Param rule body UpsertRuleRequest true "Rule configuration"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/prices/admin/rules [post]
func UpsertRule(rules pricerule.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpsertRuleRequest](c)
		if err != nil {
			return nil // Error already written
		}

		rule := input.toDomain()
		if err := rule.Validate(); err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid rule configuration", err.Error())
		}

		if err := rules.Upsert(c.Context(), rule); err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to save rule", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Rule saved successfully", rule)
	}
}
