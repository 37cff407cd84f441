package http

import (
	"net/http"
	"net/url"
	"strings"

	"dawaksahl-api/internal/delivery/http/handler"
	"dawaksahl-api/internal/delivery/http/middleware"
	"dawaksahl-api/internal/infrastructure/metrics"
	"dawaksahl-api/internal/infrastructure/storage"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Pharmacy     *handler.PharmacyHandler
	Doctor       *handler.DoctorHandler
	Catalog      *handler.CatalogHandler
	Inventory    *handler.InventoryHandler
	Prescription *handler.PrescriptionHandler
	Order        *handler.OrderHandler
	Chat         *handler.ChatHandler
	WebSocket    *handler.WebSocketHandler
	Notification *handler.NotificationHandler
	Review       *handler.ReviewHandler
	Appointment  *handler.AppointmentHandler
	Favorite     *handler.FavoriteHandler
	Cart         *handler.CartHandler
	AuditLog     *handler.AuditLogHandler
	Health       *handler.HealthHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	CORS      *middleware.CORSMiddleware
	APILimit  *middleware.RateLimiter
	AuthLimit *middleware.RateLimiter
}

type Router struct {
	router      *mux.Router
	handlers    Handlers
	middlewares Middlewares
	metrics     *metrics.Metrics
	uploadDir   string
	uploadURL   string
	language    i18n.Lang
	log         *logrus.Logger
}

func NewRouter(handlers Handlers, middlewares Middlewares, m *metrics.Metrics, uploadDir, uploadURL string, language i18n.Lang, log *logrus.Logger) *Router {
	return &Router{
		router:      mux.NewRouter(),
		handlers:    handlers,
		middlewares: middlewares,
		metrics:     m,
		uploadDir:   uploadDir,
		uploadURL:   uploadURL,
		language:    language,
		log:         log,
	}
}

// Setup registers every route and returns the router wrapped in the global middleware.
// Static segments are registered before {id} patterns sharing the same prefix.
func (r *Router) Setup() http.Handler {
	h := r.handlers
	r.router.NotFoundHandler = http.HandlerFunc(r.unmatched)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(r.unmatched)
	r.router.Use(middleware.Metrics(r.metrics))

	// Health checks and static files
	r.router.HandleFunc("/health", h.Health.Check).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)
	prefix := uploadPrefix(r.uploadURL)
	r.router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, publicFilesOnly(http.FileServer(http.Dir(r.uploadDir))))).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", h.Health.Check).Methods(http.MethodGet)

	// Auth routes (public, stricter limit)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.middlewares.AuthLimit.Limit)
	auth.HandleFunc("/register", h.Auth.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/pharmacy", h.Auth.RegisterPharmacy).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", h.Auth.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", h.Auth.RefreshToken).Methods(http.MethodPost)

	// WebSocket accepts ?token= as well as the header
	api.Handle("/chat/ws", r.middlewares.Auth.AuthenticateWebSocket(http.HandlerFunc(h.WebSocket.Serve))).Methods(http.MethodGet)

	// Public catalog
	public := api.NewRoute().Subrouter()
	public.Use(r.middlewares.APILimit.Limit)
	public.HandleFunc("/pharmacies", h.Pharmacy.List).Methods(http.MethodGet)
	public.HandleFunc("/pharmacies/{id}", h.Pharmacy.Get).Methods(http.MethodGet)
	public.HandleFunc("/pharmacies/{id}/inventory", h.Pharmacy.ListInventory).Methods(http.MethodGet)
	public.HandleFunc("/doctors", h.Doctor.List).Methods(http.MethodGet)
	public.HandleFunc("/doctors/{id}", h.Doctor.Get).Methods(http.MethodGet)
	public.HandleFunc("/categories", h.Catalog.ListCategories).Methods(http.MethodGet)
	public.HandleFunc("/medications", h.Catalog.ListMedications).Methods(http.MethodGet)
	public.HandleFunc("/medications/{id}", h.Catalog.GetMedication).Methods(http.MethodGet)
	public.HandleFunc("/medications/{id}/pharmacies", h.Catalog.ListOffers).Methods(http.MethodGet)
	public.HandleFunc("/reviews", h.Review.List).Methods(http.MethodGet)
	public.HandleFunc("/reviews/stats", h.Review.Stats).Methods(http.MethodGet)
	public.HandleFunc("/time-slots/available", h.Appointment.AvailableSlots).Methods(http.MethodGet)

	// Everything below requires a token; limits are then keyed by user
	protected := api.NewRoute().Subrouter()
	protected.Use(r.middlewares.Auth.Authenticate, r.middlewares.APILimit.Limit)

	protected.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/auth/change-password", h.Auth.ChangePassword).Methods(http.MethodPost)

	// Users
	protected.HandleFunc("/users/profile", h.User.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/users/profile", h.User.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/users/avatar", h.User.UploadAvatar).Methods(http.MethodPost)
	protected.HandleFunc("/users/addresses", h.User.ListAddresses).Methods(http.MethodGet)
	protected.HandleFunc("/users/addresses", h.User.AddAddress).Methods(http.MethodPost)
	protected.HandleFunc("/users/addresses/{id}", h.User.UpdateAddress).Methods(http.MethodPut)
	protected.HandleFunc("/users/addresses/{id}", h.User.DeleteAddress).Methods(http.MethodDelete)
	protected.HandleFunc("/users/medical-info", h.User.GetMedicalInfo).Methods(http.MethodGet)
	protected.HandleFunc("/users/medical-info", h.User.UpdateMedicalInfo).Methods(http.MethodPut)

	// Pharmacy self-service
	pharmacy := protected.PathPrefix("/pharmacy").Subrouter()
	pharmacy.Use(middleware.RequirePharmacy)
	pharmacy.HandleFunc("/profile", h.Pharmacy.GetOwnProfile).Methods(http.MethodGet)
	pharmacy.HandleFunc("/profile", h.Pharmacy.UpdateOwnProfile).Methods(http.MethodPut)
	pharmacy.HandleFunc("/stats", h.Pharmacy.Stats).Methods(http.MethodGet)
	pharmacy.HandleFunc("/inventory", h.Inventory.List).Methods(http.MethodGet)
	pharmacy.HandleFunc("/inventory", h.Inventory.Create).Methods(http.MethodPost)
	pharmacy.HandleFunc("/inventory/{id}", h.Inventory.Get).Methods(http.MethodGet)
	pharmacy.HandleFunc("/inventory/{id}", h.Inventory.Update).Methods(http.MethodPut)
	pharmacy.HandleFunc("/inventory/{id}", h.Inventory.Delete).Methods(http.MethodDelete)
	pharmacy.HandleFunc("/inventory/{id}/stock", h.Inventory.UpdateStock).Methods(http.MethodPut)

	// Doctor self-service
	doctor := protected.PathPrefix("/doctor").Subrouter()
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", h.Doctor.GetOwnProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/profile", h.Doctor.UpdateOwnProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/prescriptions", h.Prescription.Issue).Methods(http.MethodPost)
	doctor.HandleFunc("/time-slots", h.Appointment.MySlots).Methods(http.MethodGet)
	doctor.HandleFunc("/time-slots", h.Appointment.CreateSlot).Methods(http.MethodPost)
	doctor.HandleFunc("/time-slots/{id}", h.Appointment.DeleteSlot).Methods(http.MethodDelete)

	// Prescriptions
	protected.Handle("/prescriptions", middleware.RequirePatient(http.HandlerFunc(h.Prescription.Upload))).Methods(http.MethodPost)
	protected.HandleFunc("/prescriptions", h.Prescription.List).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions/{id}", h.Prescription.Get).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions/{id}/image", h.Prescription.Image).Methods(http.MethodGet)
	protected.Handle("/prescriptions/{id}/verify", middleware.RequirePharmacy(http.HandlerFunc(h.Prescription.Verify))).Methods(http.MethodPost)
	protected.Handle("/prescriptions/{id}/reject", middleware.RequirePharmacy(http.HandlerFunc(h.Prescription.Reject))).Methods(http.MethodPost)
	protected.Handle("/prescriptions/{id}/cancel", middleware.RequirePatient(http.HandlerFunc(h.Prescription.Cancel))).Methods(http.MethodPost)

	// Orders
	protected.Handle("/orders", middleware.RequirePatient(http.HandlerFunc(h.Order.Create))).Methods(http.MethodPost)
	protected.HandleFunc("/orders", h.Order.List).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id}", h.Order.Get).Methods(http.MethodGet)
	protected.Handle("/orders/{id}/status", middleware.RequirePharmacy(http.HandlerFunc(h.Order.UpdateStatus))).Methods(http.MethodPut)
	protected.HandleFunc("/orders/{id}/cancel", h.Order.Cancel).Methods(http.MethodPost)

	// Chat
	protected.HandleFunc("/chat/conversations", h.Chat.CreateConversation).Methods(http.MethodPost)
	protected.HandleFunc("/chat/conversations", h.Chat.ListConversations).Methods(http.MethodGet)
	protected.HandleFunc("/chat/conversations/{id}/messages", h.Chat.ListMessages).Methods(http.MethodGet)
	protected.HandleFunc("/chat/conversations/{id}/messages", h.Chat.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/chat/conversations/{id}/attachments", h.Chat.SendAttachment).Methods(http.MethodPost)
	protected.HandleFunc("/chat/conversations/{id}/read", h.Chat.MarkRead).Methods(http.MethodPost)
	protected.HandleFunc("/chat/conversations/{id}/mute", h.Chat.SetMuted).Methods(http.MethodPut)
	protected.HandleFunc("/chat/conversations/{id}/typing", h.Chat.Typing).Methods(http.MethodPost)
	protected.HandleFunc("/chat/messages/{id}", h.Chat.EditMessage).Methods(http.MethodPut)
	protected.HandleFunc("/chat/messages/{id}", h.Chat.DeleteMessage).Methods(http.MethodDelete)
	protected.HandleFunc("/chat/unread-count", h.Chat.UnreadCount).Methods(http.MethodGet)

	// Notifications
	protected.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/unread-count", h.Notification.UnreadCount).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/mark-all-read", h.Notification.MarkAllRead).Methods(http.MethodPut)
	protected.HandleFunc("/notifications/clear-all", h.Notification.ClearAll).Methods(http.MethodDelete)
	protected.HandleFunc("/notifications/{id}", h.Notification.Get).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", h.Notification.MarkRead).Methods(http.MethodPut)
	protected.HandleFunc("/notifications/{id}", h.Notification.Delete).Methods(http.MethodDelete)

	// Reviews
	protected.HandleFunc("/reviews/my-reviews", h.Review.MyReviews).Methods(http.MethodGet)
	protected.HandleFunc("/reviews/{id}", h.Review.Get).Methods(http.MethodGet)
	protected.Handle("/reviews", middleware.RequirePatient(http.HandlerFunc(h.Review.Create))).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{id}", h.Review.Update).Methods(http.MethodPut)
	protected.HandleFunc("/reviews/{id}", h.Review.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/reviews/{id}/helpful", h.Review.MarkHelpful).Methods(http.MethodPost)
	protected.Handle("/reviews/{id}/response", middleware.RequirePharmacy(http.HandlerFunc(h.Review.Respond))).Methods(http.MethodPost)

	// Appointments
	protected.Handle("/appointments", middleware.RequirePatient(http.HandlerFunc(h.Appointment.Book))).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", h.Appointment.List).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/stats", h.Appointment.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.Appointment.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", h.Appointment.Cancel).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}/reschedule", middleware.RequirePatient(http.HandlerFunc(h.Appointment.Reschedule))).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}/confirm", middleware.RequireDoctor(http.HandlerFunc(h.Appointment.Confirm))).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}/start", middleware.RequireDoctor(http.HandlerFunc(h.Appointment.Start))).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}/complete", middleware.RequireDoctor(http.HandlerFunc(h.Appointment.Complete))).Methods(http.MethodPost)

	// Favorites and cart belong to patients
	favorites := protected.PathPrefix("/favorites").Subrouter()
	favorites.Use(middleware.RequirePatient)
	favorites.HandleFunc("", h.Favorite.List).Methods(http.MethodGet)
	favorites.HandleFunc("", h.Favorite.Add).Methods(http.MethodPost)
	favorites.HandleFunc("", h.Favorite.Clear).Methods(http.MethodDelete)
	favorites.HandleFunc("/stats", h.Favorite.Stats).Methods(http.MethodGet)
	favorites.HandleFunc("/check", h.Favorite.Check).Methods(http.MethodGet)
	favorites.HandleFunc("/toggle", h.Favorite.Toggle).Methods(http.MethodPost)
	favorites.HandleFunc("/{id}", h.Favorite.Remove).Methods(http.MethodDelete)

	cart := protected.PathPrefix("/cart").Subrouter()
	cart.Use(middleware.RequirePatient)
	cart.HandleFunc("", h.Cart.Get).Methods(http.MethodGet)
	cart.HandleFunc("", h.Cart.Clear).Methods(http.MethodDelete)
	cart.HandleFunc("/items", h.Cart.Add).Methods(http.MethodPost)
	cart.HandleFunc("/items/{id}", h.Cart.Update).Methods(http.MethodPut)
	cart.HandleFunc("/items/{id}", h.Cart.Remove).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/pharmacies", h.Pharmacy.AdminList).Methods(http.MethodGet)
	admin.HandleFunc("/pharmacies/{id}/verification", h.Pharmacy.Verify).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}/verification", h.Doctor.Verify).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/status", h.User.UpdateUserStatus).Methods(http.MethodPut)
	admin.HandleFunc("/categories", h.Catalog.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", h.Catalog.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/medications", h.Catalog.CreateMedication).Methods(http.MethodPost)
	admin.HandleFunc("/medications/{id}", h.Catalog.UpdateMedication).Methods(http.MethodPut)
	admin.HandleFunc("/medications/{id}", h.Catalog.DeleteMedication).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", h.AuditLog.List).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/summary", h.AuditLog.Summary).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.Get).Methods(http.MethodGet)

	// Outermost first: recovery sees panics from every layer
	var root http.Handler = r.router
	root = middleware.Language(r.language)(root)
	root = r.middlewares.CORS.Handle(root)
	root = middleware.SecurityHeaders(root)
	root = middleware.Logging(r.log)(root)
	root = middleware.RequestID(root)
	root = middleware.Recovery(r.log)(root)
	return root
}

// routableMethods are the methods any route is registered with
var routableMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// unmatched answers 405 when the path is routed under another method. A method mismatch
// inside a nested subrouter is reset by the prefix matchers of later routes, so mux
// reports those requests as not found and the allowed methods are recovered here.
func (r *Router) unmatched(w http.ResponseWriter, req *http.Request) {
	if allowed := r.allowedMethods(req); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		methodNotAllowed(w, req)
		return
	}
	notFound(w, req)
}

func (r *Router) allowedMethods(req *http.Request) []string {
	var allowed []string
	for _, method := range routableMethods {
		if method == req.Method {
			continue
		}
		alt := req.Clone(req.Context())
		alt.Method = method
		var match mux.RouteMatch
		if r.router.Match(alt, &match) && match.MatchErr == nil {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	response.NotFound(w, i18n.MsgNotFound)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	response.Error(w, http.StatusMethodNotAllowed, i18n.MsgMethodNotAllowed, nil)
}

// publicFilesOnly hides directory listings and the folders served through authenticated routes
func publicFilesOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") || storage.IsPrivate(r.URL.Path) {
			notFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// uploadPrefix is the local path the files are served under; the base URL may be absolute.
func uploadPrefix(baseURL string) string {
	path := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		path = u.Path
	}
	path = strings.Trim(path, "/")
	if path == "" {
		path = "uploads"
	}
	return "/" + path + "/"
}
