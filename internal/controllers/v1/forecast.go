package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ratecase/backend/internal/forecast"
	"github.com/ratecase/backend/internal/httperror"
	"github.com/ratecase/backend/internal/httputil"
)

var forecastRuns = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "forecasts_computed_total",
		Help: "How many forecast scenarios have been evaluated.",
	},
)

func init() {
	prometheus.MustRegister(forecastRuns)
}

// RegisterForecastRoutes registers the forecast evaluation routes with
// the RouterGroup that is passed.
func RegisterForecastRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsForecast)
	r.POST("", CalculateForecast)

	r.OPTIONS("/spend-plan", OptionsForecast)
	r.POST("/spend-plan", CalculateSpendPlan)

	r.OPTIONS("/debt-service", OptionsForecast)
	r.POST("/debt-service", CalculateDebtService)

	r.OPTIONS("/existing-debt", OptionsForecast)
	r.POST("/existing-debt", CalculateExistingDebt)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Forecast
// @Success		204
// @Router			/v1/forecast [options]
func OptionsForecast(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Calculate forecast
// @Description	Evaluates a complete financing scenario into a year-by-year pro forma
// @Tags			Forecast
// @Accept			json
// @Produce		json
// @Success		200		{object}	ForecastResponse
// @Failure		400		{object}	httperror.Error
// @Param			scenario	body		forecast.ForecastInput	true	"Scenario"
// @Router			/v1/forecast [post]
func CalculateForecast(c *gin.Context) {
	var input forecast.ForecastInput
	if err := httputil.BindData(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	result := forecast.Calculate(input)
	forecastRuns.Inc()

	c.JSON(http.StatusOK, ForecastResponse{Data: &result})
}

// @Summary		Phase capital spend
// @Description	Converts project and program timelines into a fiscal-year spend plan
// @Tags			Forecast
// @Accept			json
// @Produce		json
// @Success		200		{object}	SpendPlanResponse
// @Failure		400		{object}	httperror.Error
// @Param			request	body		SpendPlanRequest	true	"Timelines"
// @Router			/v1/forecast/spend-plan [post]
func CalculateSpendPlan(c *gin.Context) {
	var request SpendPlanRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	data := SpendPlanData{
		Plan:      forecast.BuildSpendPlan(request.Timelines, request.FiscalYearStartMonth),
		Breakdown: forecast.BuildSpendBreakdown(request.Timelines, request.FiscalYearStartMonth),
	}

	c.JSON(http.StatusOK, SpendPlanResponse{Data: &data})
}

// @Summary		Schedule new debt
// @Description	Builds issuance and payment schedules for the debt-financed share of the spend plan
// @Tags			Forecast
// @Accept			json
// @Produce		json
// @Success		200		{object}	DebtServiceResponse
// @Failure		400		{object}	httperror.Error
// @Param			request	body		DebtServiceRequest	true	"Timelines and assumptions"
// @Router			/v1/forecast/debt-service [post]
func CalculateDebtService(c *gin.Context) {
	var request DebtServiceRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	plan := forecast.BuildSpendPlan(request.Timelines, request.FiscalYearStartMonth)
	assumptions := forecast.ResolveAssumptions(request.Assumptions, request.FundingSources)
	schedule := forecast.BuildDebtServiceSchedule(plan, assumptions, request.StartYear, request.ProjectionYears)

	c.JSON(http.StatusOK, DebtServiceResponse{Data: &schedule})
}

// @Summary		Schedule existing debt
// @Description	Combines manual year totals with legacy instruments into a unified schedule
// @Tags			Forecast
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExistingDebtResponse
// @Failure		400		{object}	httperror.Error
// @Param			request	body		forecast.ExistingDebtInput	true	"Existing debt"
// @Router			/v1/forecast/existing-debt [post]
func CalculateExistingDebt(c *gin.Context) {
	var input forecast.ExistingDebtInput
	if err := httputil.BindData(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	schedule := forecast.BuildExistingDebtSchedule(input)

	c.JSON(http.StatusOK, ExistingDebtResponse{Data: &schedule})
}
