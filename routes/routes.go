package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/osoroyal/churchhub/handlers"
	"github.com/osoroyal/churchhub/middlewares"
)

// Register wires all HTTP routes. secret signs and verifies the JWTs.
func Register(e *echo.Echo, secret string) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(secret)
	dist := handlers.NewDistrictHandler()
	zone := handlers.NewZoneHandler()
	cell := handlers.NewHomeCellHandler()
	tree := handlers.NewTreeHandler()
	mem := handlers.NewMemberHandler()
	exp := handlers.NewExportHandler()
	stf := handlers.NewStaffHandler()
	pay := handlers.NewPayrollHandler()
	fin := handlers.NewContributionHandler()
	evt := handlers.NewEventHandler()
	wel := handlers.NewWelfareHandler()
	msg := handlers.NewMessageHandler()
	store := handlers.NewStoreHandler()
	dash := handlers.NewDashboardHandler()
	prof := handlers.NewProfileHandler()

	// ===== Public =====
	e.POST("/api/auth/login", auth.Login)
	// read-only tree feeds the public landing view, no token needed
	e.GET("/api/homecells/tree", tree.Get)

	authMW := middlewares.RequireAuth(secret)

	// ===== Authenticated (any staff role) =====
	api := e.Group("/api", authMW, middlewares.RequireRole("admin", "pastor", "leader"))

	// Hierarchy
	api.GET("/homecells/districts", dist.List)
	api.GET("/homecells/districts/:id", dist.Get)
	api.GET("/homecells/districts/:id/impact", dist.Impact)
	api.GET("/homecells/districts/:id/zones", zone.ListByDistrict)

	api.GET("/homecells/zones", zone.List)
	api.GET("/homecells/zones/:id/impact", zone.Impact)
	api.GET("/homecells/zones/:id/homecells", cell.ListByZone)

	api.GET("/homecells/homecells", cell.List)
	api.GET("/homecells/homecells/:id", cell.Get)
	api.GET("/homecells/homecells/:id/export", exp.HomeCellRoster)

	// Members & assignment
	api.GET("/members", mem.List)
	api.GET("/members/unassigned", mem.Unassigned)
	api.GET("/members/:id", mem.Get)
	api.POST("/members", mem.Create)
	api.POST("/members/import", mem.Import)
	api.PUT("/members/:id", mem.Update)
	api.POST("/members/:id/assign", mem.Assign)
	api.POST("/members/:id/transfer", mem.Transfer)
	api.POST("/members/:id/unassign", mem.Unassign)
	api.GET("/members/:id/transfers", mem.Transfers)

	// Events calendar
	api.GET("/events", evt.ListAll)
	api.GET("/events/:id", evt.GetByID)
	api.GET("/events/services", evt.ListServices)
	api.POST("/events/services", evt.CreateService)
	api.PUT("/events/services/:id", evt.UpdateService)
	api.DELETE("/events/services/:id", evt.DeleteService)
	api.GET("/events/specials", evt.ListSpecials)
	api.POST("/events/specials", evt.CreateSpecial)
	api.PUT("/events/specials/:id", evt.UpdateSpecial)
	api.DELETE("/events/specials/:id", evt.DeleteSpecial)
	api.GET("/events/holidays", evt.ListHolidays)
	api.POST("/events/holidays", evt.CreateHoliday)
	api.PUT("/events/holidays/:id", evt.UpdateHoliday)
	api.DELETE("/events/holidays/:id", evt.DeleteHoliday)

	// Welfare
	api.GET("/welfare", wel.List)
	api.POST("/welfare", wel.Create)
	api.GET("/welfare/pending-count", wel.PendingCount)

	// Dashboard & profile
	api.GET("/dashboard/summary", dash.Summary)
	api.PUT("/profile/password", prof.ChangePassword)

	// ===== Pastor/Admin =====
	lead := e.Group("/api", authMW, middlewares.RequireRole("pastor", "admin"))

	lead.POST("/homecells/districts", dist.Create)
	lead.PUT("/homecells/districts/:id", dist.Update)
	lead.POST("/homecells/zones", zone.Create)
	lead.PUT("/homecells/zones/:id", zone.Update)
	lead.POST("/homecells/homecells", cell.Create)
	lead.PUT("/homecells/homecells/:id", cell.Update)

	lead.POST("/welfare/:id/approve", wel.Approve)
	lead.POST("/welfare/:id/reject", wel.Reject)

	lead.GET("/contributions", fin.List)
	lead.POST("/contributions", fin.Create)
	lead.GET("/contributions/summary", fin.Summary)

	lead.POST("/messages", msg.Send)
	lead.GET("/messages", msg.List)

	// ===== Admin only =====
	admin := e.Group("/api", authMW, middlewares.RequireRole("admin"))

	admin.DELETE("/homecells/districts/:id", dist.Delete)
	admin.DELETE("/homecells/zones/:id", zone.Delete)
	admin.DELETE("/homecells/homecells/:id", cell.Delete)
	admin.DELETE("/members/:id", mem.Delete)
	admin.DELETE("/contributions/:id", fin.Delete)

	admin.GET("/staff", stf.List)
	admin.POST("/staff", stf.Create)
	admin.PUT("/staff/:id", stf.Update)
	admin.DELETE("/staff/:id", stf.Delete)

	admin.GET("/payroll/runs", pay.List)
	admin.GET("/payroll/runs/:id", pay.Get)
	admin.POST("/payroll/runs", pay.Generate)
	admin.PATCH("/payroll/items/:id", pay.AdjustItem)
	admin.POST("/payroll/runs/:id/approve", pay.Approve)
	admin.POST("/payroll/runs/:id/reject", pay.Reject)

	admin.GET("/store/modules", store.Catalog)
	admin.POST("/store/subscriptions", store.Subscribe)
	admin.PATCH("/store/subscriptions/:id", store.Patch)
}
