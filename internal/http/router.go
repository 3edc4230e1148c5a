package http

import (
	"net/http"

	"pg-backend/internal/config"
	"pg-backend/internal/handlers"
	"pg-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	tenantHandler *handlers.TenantHandler,
	roomHandler *handlers.RoomHandler,
	paymentHandler *handlers.PaymentHandler,
	complaintHandler *handlers.ComplaintHandler,
	notificationHandler *handlers.NotificationHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	tenantOnly := authMiddleware.RequireRole("TENANT")
	tenantOrAdmin := authMiddleware.RequireRole("TENANT", "ADMIN")

	// Locally stored uploads (proofs, photos, documents)
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	// Public routes
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Authenticated account info
	r.Handle("/api/auth/me", authMiddleware.Authenticate(
		http.HandlerFunc(authHandler.Me))).Methods("GET")

	// Tenant self routes; registered before the admin subrouter so /me never
	// falls into /{id}. Admins reach them too; without a profile the handler
	// answers 404.
	r.Handle("/api/tenants/me", tenantOrAdmin(
		http.HandlerFunc(tenantHandler.Me))).Methods("GET")
	r.Handle("/api/tenants/me/id-proof", tenantOrAdmin(
		http.HandlerFunc(tenantHandler.UploadIDProof))).Methods("POST")

	// Admin targets any tenant, a tenant only their own profile
	r.Handle("/api/tenants/{id}/id-proof", authMiddleware.Authenticate(
		http.HandlerFunc(tenantHandler.UploadIDProofFor))).Methods("POST")

	// Tenants: admin CRUD and ID verification
	tenantsAdmin := r.PathPrefix("/api/tenants").Subrouter()
	tenantsAdmin.Use(authMiddleware.RequireAdmin)
	tenantsAdmin.HandleFunc("", tenantHandler.List).Methods("GET")
	tenantsAdmin.HandleFunc("", tenantHandler.Create).Methods("POST")
	tenantsAdmin.HandleFunc("/{id}", tenantHandler.Get).Methods("GET")
	tenantsAdmin.HandleFunc("/{id}", tenantHandler.Update).Methods("PUT")
	tenantsAdmin.HandleFunc("/{id}", tenantHandler.Delete).Methods("DELETE")
	tenantsAdmin.HandleFunc("/{id}/verify-id", tenantHandler.VerifyIDProof).Methods("POST")

	// Rooms: reads are visible to any authenticated user, writes are admin
	r.Handle("/api/rooms", authMiddleware.Authenticate(
		http.HandlerFunc(roomHandler.List))).Methods("GET")
	r.Handle("/api/rooms/{id}", authMiddleware.Authenticate(
		http.HandlerFunc(roomHandler.Get))).Methods("GET")

	roomsAdmin := r.PathPrefix("/api/rooms").Subrouter()
	roomsAdmin.Use(authMiddleware.RequireAdmin)
	roomsAdmin.HandleFunc("", roomHandler.Create).Methods("POST")
	roomsAdmin.HandleFunc("/reconcile", roomHandler.Reconcile).Methods("POST")
	roomsAdmin.HandleFunc("/{id}", roomHandler.Update).Methods("PUT")
	roomsAdmin.HandleFunc("/{id}", roomHandler.Delete).Methods("DELETE")

	// Payments: admin/tenant scoping happens inside the handlers
	r.Handle("/api/payments/{id}/verify", authMiddleware.RequireAdmin(
		http.HandlerFunc(paymentHandler.Verify))).Methods("PUT")

	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("", paymentHandler.List).Methods("GET")
	paymentsAPI.HandleFunc("", paymentHandler.Create).Methods("POST")
	paymentsAPI.HandleFunc("/balance/{tenant_id}/{month}", paymentHandler.Balance).Methods("GET")
	paymentsAPI.HandleFunc("/summary/{tenant_id}", paymentHandler.Summary).Methods("GET")
	paymentsAPI.HandleFunc("/{id}/proof", paymentHandler.Proof).Methods("POST")
	paymentsAPI.HandleFunc("/{id}/receipt", paymentHandler.Receipt).Methods("GET")

	// Complaints
	r.Handle("/api/complaints", tenantOnly(
		http.HandlerFunc(complaintHandler.Create))).Methods("POST")
	r.Handle("/api/complaints/{id}/status", authMiddleware.RequireAdmin(
		http.HandlerFunc(complaintHandler.UpdateStatus))).Methods("PUT")

	complaintsAPI := r.PathPrefix("/api/complaints").Subrouter()
	complaintsAPI.Use(authMiddleware.Authenticate)
	complaintsAPI.HandleFunc("", complaintHandler.List).Methods("GET")
	complaintsAPI.HandleFunc("/{id}", complaintHandler.Get).Methods("GET")
	complaintsAPI.HandleFunc("/{id}/comments", complaintHandler.AddComment).Methods("POST")

	// Notifications
	r.Handle("/api/notifications", authMiddleware.RequireAdmin(
		http.HandlerFunc(notificationHandler.Send))).Methods("POST")

	notificationsAPI := r.PathPrefix("/api/notifications").Subrouter()
	notificationsAPI.Use(authMiddleware.Authenticate)
	notificationsAPI.HandleFunc("", notificationHandler.List).Methods("GET")
	notificationsAPI.HandleFunc("/stream", notificationHandler.Stream).Methods("GET")
	notificationsAPI.HandleFunc("/read-all", notificationHandler.MarkAllRead).Methods("PUT")
	notificationsAPI.HandleFunc("/{id}/read", notificationHandler.MarkRead).Methods("PUT")

	// Monitoring (admin)
	monitoringAPI := r.PathPrefix("/api/monitoring").Subrouter()
	monitoringAPI.Use(authMiddleware.RequireAdmin)
	monitoringAPI.HandleFunc("/system", monitoringHandler.System).Methods("GET")

	return r
}
