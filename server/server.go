package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/mtetteh/groundwork/database"
	"github.com/mtetteh/groundwork/server/auth"
	"github.com/mtetteh/groundwork/server/gstorage"
	"github.com/mtetteh/groundwork/server/logger"
	"github.com/mtetteh/groundwork/server/models"
	"github.com/mtetteh/groundwork/shared"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var logg *zap.SugaredLogger

func init() {
	logg = logger.NewLogger()
}

// ContactStore is the slice of ContactRepo the handlers depend on.
type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	All(ctx context.Context) ([]models.Contact, error)
	FindByID(ctx context.Context, id string) (*models.Contact, error)
	Update(ctx context.Context, id string, data map[string]interface{}) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
}

type ProjectStore interface {
	Create(ctx context.Context, project *models.Project) error
	All(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, id string, data map[string]interface{}) (*models.Project, error)
	Delete(ctx context.Context, id string) (*models.Project, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	AtLeastOneUserExists(ctx context.Context) (bool, error)
}

// ObjectStore is the slice of gstorage.GStorage the handlers depend on.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) error
	PublicURL(key string) string
	DeleteFile(ctx context.Context, key string) error
}

type Server struct {
	contacts ContactStore
	projects ProjectStore
	users    UserStore
	storage  ObjectStore

	jwtSecret     []byte
	tokenLifetime time.Duration
}

// Start wires the database, object storage & repositories together,
// then serves HTTP until SIGINT/SIGTERM.
func Start(config *viper.Viper, devMode bool) {
	serverConfig := &shared.ServerConfig{}
	fatalOnError(config.Unmarshal(serverConfig))
	fatalOnError(validator.New().Struct(serverConfig))

	ctx := context.Background()

	db, err := database.Connect(ctx, serverConfig.Mongo.URI, serverConfig.Mongo.Database)
	fatalOnError(err)

	gStorage, err := gstorage.NewGStorage(
		ctx,
		serverConfig.Google.ApplicationCredentials,
		serverConfig.Google.Storage.Bucket,
		serverConfig.Google.Storage.CustomDomain,
	)
	fatalOnError(err)

	tokenLifetime := auth.DEFAULT_TOKEN_LIFETIME
	if serverConfig.Groundwork.TokenExpiryDays > 0 {
		tokenLifetime = time.Duration(serverConfig.Groundwork.TokenExpiryDays) * 24 * time.Hour
	}

	server := &Server{
		contacts:      models.NewContactRepo(db.Database),
		projects:      models.NewProjectRepo(db.Database),
		users:         models.NewUserRepo(db.Database),
		storage:       gStorage,
		jwtSecret:     []byte(serverConfig.Groundwork.JwtSecret),
		tokenLifetime: tokenLifetime,
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%v", serverConfig.Groundwork.Listener.Port),
		Handler: server.router(),
	}

	go serve(httpServer)

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	<-done

	cleanup(httpServer, db)
}

func (s *Server) router() *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware, s.initialContextMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/contact", s.createContact).Methods("POST")
	api.HandleFunc("/contact", s.protected(s.listContacts)).Methods("GET")
	api.HandleFunc("/contact/{id}", s.protected(s.findContact)).Methods("GET")
	api.HandleFunc("/contact/{id}", s.protected(s.deleteContact)).Methods("DELETE")
	api.HandleFunc("/contact/{id}/status", s.protected(s.updateContactStatus)).Methods("PATCH")

	api.HandleFunc("/projects/create", s.createProject).Methods("POST")
	api.HandleFunc("/projects", s.listProjects).Methods("GET")
	api.HandleFunc("/projects/{id}", s.findProject).Methods("GET")
	api.HandleFunc("/projects/{id}", s.updateProject).Methods("PUT")
	api.HandleFunc("/projects/{id}", s.deleteProject).Methods("DELETE")

	api.HandleFunc("/auth/sign-up", s.signUp).Methods("POST")
	api.HandleFunc("/auth/sign-in", s.signIn).Methods("POST")
	api.HandleFunc("/auth/me", s.protected(s.me)).Methods("GET")

	return router
}
