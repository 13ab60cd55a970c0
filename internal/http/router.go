package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"concierge-backend/internal/handlers"
	"concierge-backend/internal/middleware"
	"concierge-backend/internal/realtime"
)

func NewRouter(
	companyHandler *handlers.CompanyHandler,
	residentHandler *handlers.ResidentHandler,
	bookingHandler *handlers.BookingHandler,
	packageHandler *handlers.PackageHandler,
	visitorHandler *handlers.VisitorHandler,
	parkingHandler *handlers.ParkingHandler,
	messageHandler *handlers.MessageHandler,
	issueHandler *handlers.IssueHandler,
	dashboardHandler *handlers.DashboardHandler,
	notificationHandler *handlers.NotificationHandler,
	reportHandler *handlers.ReportHandler,
	webhookHandler *handlers.WebhookHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthHandler *handlers.HealthHandler,
	hub *realtime.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public - company onboarding creates the account the staff then
	// authenticate against.
	r.HandleFunc("/api/companies", companyHandler.CreateCompany).Methods("POST")

	// Public - provider webhooks, addressed by company in the URL.
	r.HandleFunc("/webhooks/{companyId}/sms", webhookHandler.InboundSMS).Methods("POST")
	r.HandleFunc("/webhooks/{companyId}/call", webhookHandler.InboundCall).Methods("POST")

	// Public - realtime feed for the dashboard frontend.
	r.HandleFunc("/ws", hub.HandleWebSocket)

	// Protected API routes - Company settings
	companyAPI := r.PathPrefix("/api/company").Subrouter()
	companyAPI.Use(authMiddleware.Authenticate)
	companyAPI.HandleFunc("", companyHandler.GetCurrent).Methods("GET")
	companyAPI.HandleFunc("/settings", companyHandler.UpdateSettings).Methods("PUT")
	companyAPI.HandleFunc("/staff-emails", companyHandler.UpdateStaffEmails).Methods("PUT")
	companyAPI.HandleFunc("/amenities", companyHandler.AddAmenity).Methods("POST")
	companyAPI.HandleFunc("/amenities/{amenityId}", companyHandler.RemoveAmenity).Methods("DELETE")

	// Protected API routes - Residents
	residentsAPI := r.PathPrefix("/api/residents").Subrouter()
	residentsAPI.Use(authMiddleware.Authenticate)
	residentsAPI.HandleFunc("", residentHandler.ListResidents).Methods("GET")
	residentsAPI.HandleFunc("", residentHandler.CreateResident).Methods("POST")
	residentsAPI.HandleFunc("/associate", residentHandler.AssociateContact).Methods("GET")
	residentsAPI.HandleFunc("/{id}", residentHandler.GetResident).Methods("GET")
	residentsAPI.HandleFunc("/{id}", residentHandler.UpdateResident).Methods("PUT")
	residentsAPI.HandleFunc("/{id}", residentHandler.DeleteResident).Methods("DELETE")

	// Protected API routes - Amenity bookings
	bookingsAPI := r.PathPrefix("/api/bookings").Subrouter()
	bookingsAPI.Use(authMiddleware.Authenticate)
	bookingsAPI.HandleFunc("", bookingHandler.ListBookings).Methods("GET")
	bookingsAPI.HandleFunc("", bookingHandler.CreateBooking).Methods("POST")
	bookingsAPI.HandleFunc("/{id}", bookingHandler.GetBooking).Methods("GET")
	bookingsAPI.HandleFunc("/{id}", bookingHandler.UpdateBooking).Methods("PUT")
	bookingsAPI.HandleFunc("/{id}", bookingHandler.DeleteBooking).Methods("DELETE")
	bookingsAPI.HandleFunc("/{id}/cancel", bookingHandler.CancelBooking).Methods("POST")

	// Protected API routes - Packages
	packagesAPI := r.PathPrefix("/api/packages").Subrouter()
	packagesAPI.Use(authMiddleware.Authenticate)
	packagesAPI.HandleFunc("", packageHandler.ListPackages).Methods("GET")
	packagesAPI.HandleFunc("", packageHandler.CreatePackage).Methods("POST")
	packagesAPI.HandleFunc("/stats", packageHandler.GetStats).Methods("GET")
	packagesAPI.HandleFunc("/bulk-pickup", packageHandler.BulkPickup).Methods("POST")
	packagesAPI.HandleFunc("/bulk-notify", notificationHandler.NotifyPackages).Methods("POST")
	packagesAPI.HandleFunc("/{id}", packageHandler.GetPackage).Methods("GET")
	packagesAPI.HandleFunc("/{id}", packageHandler.UpdatePackage).Methods("PUT")
	packagesAPI.HandleFunc("/{id}", packageHandler.DeletePackage).Methods("DELETE")
	packagesAPI.HandleFunc("/{id}/pickup", packageHandler.MarkPickedUp).Methods("POST")

	// Protected API routes - Visitors
	visitorsAPI := r.PathPrefix("/api/visitors").Subrouter()
	visitorsAPI.Use(authMiddleware.Authenticate)
	visitorsAPI.HandleFunc("", visitorHandler.ListVisitors).Methods("GET")
	visitorsAPI.HandleFunc("", visitorHandler.CreateVisitor).Methods("POST")
	visitorsAPI.HandleFunc("/today", visitorHandler.TodaysVisitors).Methods("GET")
	visitorsAPI.HandleFunc("/{id}", visitorHandler.GetVisitor).Methods("GET")
	visitorsAPI.HandleFunc("/{id}", visitorHandler.UpdateVisitor).Methods("PUT")
	visitorsAPI.HandleFunc("/{id}", visitorHandler.DeleteVisitor).Methods("DELETE")
	visitorsAPI.HandleFunc("/{id}/check-in", visitorHandler.CheckIn).Methods("POST")
	visitorsAPI.HandleFunc("/{id}/check-out", visitorHandler.CheckOut).Methods("POST")
	visitorsAPI.HandleFunc("/{id}/no-show", visitorHandler.MarkNoShow).Methods("POST")

	// Protected API routes - Visitor parking
	parkingAPI := r.PathPrefix("/api/parking-requests").Subrouter()
	parkingAPI.Use(authMiddleware.Authenticate)
	parkingAPI.HandleFunc("", parkingHandler.ListRequests).Methods("GET")
	parkingAPI.HandleFunc("", parkingHandler.CreateRequest).Methods("POST")
	parkingAPI.HandleFunc("/pending", parkingHandler.ListPending).Methods("GET")
	parkingAPI.HandleFunc("/{id}", parkingHandler.GetRequest).Methods("GET")
	parkingAPI.HandleFunc("/{id}", parkingHandler.UpdateRequest).Methods("PUT")
	parkingAPI.HandleFunc("/{id}", parkingHandler.DeleteRequest).Methods("DELETE")
	parkingAPI.HandleFunc("/{id}/approve", parkingHandler.Approve).Methods("POST")
	parkingAPI.HandleFunc("/{id}/deny", parkingHandler.Deny).Methods("POST")

	// Protected API routes - Messages
	messagesAPI := r.PathPrefix("/api/messages").Subrouter()
	messagesAPI.Use(authMiddleware.Authenticate)
	messagesAPI.HandleFunc("", messageHandler.ListMessages).Methods("GET")
	messagesAPI.HandleFunc("", messageHandler.SendMessage).Methods("POST")
	messagesAPI.HandleFunc("/conversation", messageHandler.GetConversation).Methods("GET")
	messagesAPI.HandleFunc("/conversation/read", messageHandler.MarkConversationRead).Methods("POST")
	messagesAPI.HandleFunc("/search", messageHandler.Search).Methods("GET")
	messagesAPI.HandleFunc("/stats", messageHandler.GetMessageStats).Methods("GET")
	messagesAPI.HandleFunc("/{id}", messageHandler.DeleteMessage).Methods("DELETE")
	messagesAPI.HandleFunc("/{id}/read", messageHandler.MarkRead).Methods("POST")

	// Protected API routes - Call logs
	callsAPI := r.PathPrefix("/api/calls").Subrouter()
	callsAPI.Use(authMiddleware.Authenticate)
	callsAPI.HandleFunc("", messageHandler.ListCallLogs).Methods("GET")
	callsAPI.HandleFunc("/stats", messageHandler.GetCallStats).Methods("GET")
	callsAPI.HandleFunc("/{id}", messageHandler.GetCallLog).Methods("GET")
	callsAPI.HandleFunc("/{id}", messageHandler.UpdateCallLog).Methods("PUT")
	callsAPI.HandleFunc("/{id}", messageHandler.DeleteCallLog).Methods("DELETE")
	callsAPI.HandleFunc("/{id}/read", messageHandler.MarkCallRead).Methods("POST")

	// Protected API routes - Issues
	issuesAPI := r.PathPrefix("/api/issues").Subrouter()
	issuesAPI.Use(authMiddleware.Authenticate)
	issuesAPI.HandleFunc("", issueHandler.ListIssues).Methods("GET")
	issuesAPI.HandleFunc("", issueHandler.CreateIssue).Methods("POST")
	issuesAPI.HandleFunc("/{id}", issueHandler.GetIssue).Methods("GET")
	issuesAPI.HandleFunc("/{id}", issueHandler.UpdateIssue).Methods("PUT")
	issuesAPI.HandleFunc("/{id}/status", issueHandler.SetStatus).Methods("PUT")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/stats", dashboardHandler.GetStats).Methods("GET")

	// Protected API routes - Notifications
	notificationsAPI := r.PathPrefix("/api/notifications").Subrouter()
	notificationsAPI.Use(authMiddleware.Authenticate)
	notificationsAPI.HandleFunc("/templates", notificationHandler.ListTemplates).Methods("GET")
	notificationsAPI.HandleFunc("/dispatch", notificationHandler.Dispatch).Methods("POST")
	notificationsAPI.HandleFunc("/dispatch-many", notificationHandler.DispatchMany).Methods("POST")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/packages", reportHandler.PackageReport).Methods("GET")

	// Protected API routes - System monitoring
	monitoringAPI := r.PathPrefix("/api/monitoring").Subrouter()
	monitoringAPI.Use(authMiddleware.Authenticate)
	monitoringAPI.HandleFunc("/system", monitoringHandler.SystemStats).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
