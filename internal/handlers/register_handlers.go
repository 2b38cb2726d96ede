package handlers

import (
	"reflect"

	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/middleware"
	"github.com/SscSPs/backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// anonymousUser acts on requests when bearer authentication is disabled.
const anonymousUser = "anonymous"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerDecimalValidation()

	registerHomeRoutes(r)

	setupAPIV1Routes(r, cfg, services)
}

// registerDecimalValidation lets numeric binding tags (gt, gte, lt) apply to decimal.Decimal fields.
func registerDecimalValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	var v1 *gin.RouterGroup
	if cfg.JWTSecret != "" {
		v1 = r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	} else {
		v1 = r.Group("/api/v1", middleware.DefaultUser(anonymousUser))
	}

	registerAccountRoutes(v1, service.Account)
	registerJournalRoutes(v1, service.Journal, service.VoucherNumber)
	registerCashBankRoutes(v1, service.CashBank)
	registerSalesRoutes(v1, service.Sales)
	registerTaxInvoiceRoutes(v1, service.TaxInvoice)
	registerReportingRoutes(v1, service.Reporting)
}
