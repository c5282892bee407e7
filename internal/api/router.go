// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshapiro789/NationalParkExplorer/internal/api/handlers"
	"github.com/dshapiro789/NationalParkExplorer/internal/api/middleware"
	"github.com/dshapiro789/NationalParkExplorer/internal/catalog"
	"github.com/dshapiro789/NationalParkExplorer/internal/connectivity"
	"github.com/dshapiro789/NationalParkExplorer/internal/favorites"
	"github.com/dshapiro789/NationalParkExplorer/internal/maps"
	"github.com/dshapiro789/NationalParkExplorer/internal/nps"
	"github.com/dshapiro789/NationalParkExplorer/internal/querycache"
	"github.com/dshapiro789/NationalParkExplorer/internal/remote"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage"
	"github.com/dshapiro789/NationalParkExplorer/internal/tiles"
	"github.com/dshapiro789/NationalParkExplorer/internal/trips"
	"github.com/dshapiro789/NationalParkExplorer/internal/weather"
	"github.com/dshapiro789/NationalParkExplorer/internal/websocket"
)

// Services bundles everything the router hands to handlers.
type Services struct {
	DB        *storage.DB
	Parks     *storage.ParkRepository
	Hub       *websocket.Hub
	Monitor   *connectivity.Monitor
	Cache     *querycache.Cache
	Catalog   *catalog.Service
	Favorites *favorites.Service
	Trips     *trips.Service
	Tiles     *tiles.Loader
	Maps      *maps.Service
	NPS       *nps.Client
	Weather   *weather.Client
	Auth      *remote.AuthClient
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(s Services) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API subrouter
	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(s.DB)).Methods("GET")
	api.HandleFunc("/status", handlers.Status(s.DB, s.Hub, s.Monitor)).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(s.Hub)).Methods("GET")

	// Park endpoints
	api.HandleFunc("/parks", handlers.ListParks(s.Catalog)).Methods("GET")
	api.HandleFunc("/parks/{id}", handlers.GetPark(s.Parks)).Methods("GET")
	api.HandleFunc("/activities", handlers.ListActivities(s.NPS)).Methods("GET")

	// Weather endpoint
	api.HandleFunc("/weather", handlers.GetWeather(s.Weather, s.Cache)).Methods("GET")

	// Favorites endpoints
	api.HandleFunc("/favorites", handlers.GetFavorites(s.Favorites)).Methods("GET")
	api.HandleFunc("/favorites/toggle", handlers.ToggleFavorite(s.Favorites)).Methods("POST")

	// Trip endpoints
	api.HandleFunc("/trips", handlers.ListTrips(s.Trips)).Methods("GET")
	api.HandleFunc("/trips", handlers.CreateTrip(s.Trips)).Methods("POST")
	api.HandleFunc("/trips/{id}", handlers.UpdateTrip(s.Trips)).Methods("PUT")
	api.HandleFunc("/trips/{id}", handlers.DeleteTrip(s.Trips)).Methods("DELETE")
	api.HandleFunc("/trips/{id}/items", handlers.AddTripItem(s.Trips)).Methods("POST")
	api.HandleFunc("/trips/{id}/items/{itemID}", handlers.DeleteTripItem(s.Trips)).Methods("DELETE")
	api.HandleFunc("/trips/{id}/checklists", handlers.AddChecklist(s.Trips)).Methods("POST")
	api.HandleFunc("/trips/{id}/checklists/{checklistID}", handlers.SetChecklistDone(s.Trips)).Methods("PUT")
	api.HandleFunc("/trips/{id}/checklists/{checklistID}", handlers.DeleteChecklist(s.Trips)).Methods("DELETE")

	// Offline map endpoints
	api.HandleFunc("/parks/{id}/maps", handlers.MapStatus(s.Maps, s.Parks)).Methods("GET")
	api.HandleFunc("/parks/{id}/maps/{mapID}", handlers.OpenMap(s.Maps)).Methods("GET")
	api.HandleFunc("/parks/{id}/maps/{mapID}/download", handlers.DownloadMap(s.Maps, s.Parks)).Methods("POST")
	api.HandleFunc("/parks/{id}/maps/{mapID}", handlers.DeleteMap(s.Maps)).Methods("DELETE")

	// Tile proxy
	api.HandleFunc("/tiles", handlers.GetTile(s.Tiles)).Methods("GET")

	// Auth endpoints
	api.HandleFunc("/auth/signin", handlers.SignIn(s.Auth)).Methods("POST")
	api.HandleFunc("/auth/signup", handlers.SignUp(s.Auth)).Methods("POST")
	api.HandleFunc("/auth/signout", handlers.SignOut(s.Auth, s.Cache)).Methods("POST")

	return r
}
