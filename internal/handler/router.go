package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes. Only /login and /health are
// reachable without a session.
func SetupRouter(d Deps) *gin.Engine {
	gin.SetMode(d.Config.Server.Mode)
	RegisterValidators()

	r := gin.New()

	r.Use(RecoveryMiddleware(d.Logger))
	r.Use(RequestLogger(d.Logger))
	r.Use(CORSMiddleware())

	h := NewHandler(d)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", h.Login)

	authed := r.Group("/", h.AuthMiddleware())
	{
		authed.POST("/logout", h.Logout)

		authed.GET("/", h.Dashboard)
		authed.GET("/dashboard", h.Dashboard)
		authed.GET("/search", h.Search)
		authed.GET("/client_search", h.ClientSearch)

		// cases
		authed.POST("/add_case", h.AddCase)
		authed.POST("/update_case_status", h.UpdateCaseStatus)
		authed.POST("/undo_status/:case_id", h.UndoStatus)
		authed.POST("/rename_debtor", h.RenameDebtor)
		authed.GET("/case/:case_id/custom_values", h.CaseCustomValues)
		authed.POST("/case/:case_id/custom_values", h.SetCaseCustomValue)

		// transactions
		authed.POST("/add_transaction", h.AddTransaction)
		authed.GET("/get_transaction/:id", h.GetTransaction)
		authed.POST("/edit_transaction", h.EditTransaction)
		authed.POST("/delete_transaction/:id", h.DeleteTransaction)

		// notes
		authed.POST("/add_note", h.AddNote)
		authed.POST("/edit_note", h.EditNote)
		authed.POST("/delete_note/:id", h.DeleteNote)

		client := authed.Group("/client")
		{
			client.POST("/add_client", h.AddClient)
			client.POST("/rename_client", h.RenameClient)
			client.GET("/:id", h.ClientDashboard)
			client.GET("/:id/cases", h.ClientCases)
			client.DELETE("/:id", h.DeleteClient)
			client.POST("/:id/mark_billed", h.MarkBilled)
			client.GET("/:id/custom_fields", h.ClientCustomFields)
			client.POST("/:id/custom_fields", h.LinkCustomField)
		}

		// reports
		authed.GET("/report/:client_id", h.Report)
		authed.GET("/export_excel", h.ExportExcel)
		authed.GET("/export_pdf", h.ExportPDF)

		authed.GET("/charges", h.ListCharges)
		authed.POST("/charges", h.AddCharge)
		authed.GET("/custom_fields", h.ListCustomFields)
		authed.POST("/custom_fields", h.DefineCustomField)

		admin := authed.Group("/admin", RequireAdmin())
		{
			admin.GET("/db_structure", h.DBStructure)
		}
	}

	return r
}
