// Command crmsession-demo walks the whole session lifecycle against a fake
// CRM admin API: login, authorized calls, durable restore, auto-logout.
//
// With no flags it runs fully self-contained (in-memory storage, in-process
// API). -driver selects bolt or redis storage; -redis-addr empty starts an
// embedded miniredis, so no external Redis is required.
//
// Run:
//
//	go run ./cmd/crmsession-demo -driver bolt -bolt-path /tmp/crmsession.db -ttl 5s
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/crmkit/authsession"
	"github.com/crmkit/authsession/crm"
)

func main() {
	// .env is optional; flags override environment.
	_ = godotenv.Load()

	var (
		driver    = flag.String("driver", "memory", "session storage driver: memory, bolt, or redis")
		boltPath  = flag.String("bolt-path", "crmsession.db", "bolt database file (driver=bolt)")
		redisAddr = flag.String("redis-addr", "", "redis address (driver=redis); empty starts embedded miniredis or uses REDIS_ADDR")
		apiURL    = flag.String("api-url", "", "CRM API base url; empty starts an in-process fake API or uses CRM_API_URL")
		ttl       = flag.Duration("ttl", 10*time.Second, "access token lifetime issued by the fake API")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := authsession.DefaultConfig()
	switch *driver {
	case "memory":
		cfg.Storage.Driver = authsession.DriverMemory
	case "bolt":
		cfg.Storage.Driver = authsession.DriverBolt
		cfg.Storage.Path = *boltPath
	case "redis":
		addr := *redisAddr
		if addr == "" {
			addr = os.Getenv("REDIS_ADDR")
		}
		if addr == "" {
			mr, err := miniredis.Run()
			if err != nil {
				logger.Fatal("start miniredis", zap.Error(err))
			}
			defer mr.Close()
			addr = mr.Addr()
			logger.Info("started embedded miniredis", zap.String("addr", addr))
		}
		cfg.Storage.Driver = authsession.DriverRedis
		cfg.Storage.RedisAddr = addr
	default:
		fmt.Fprintf(os.Stderr, "unknown driver %q\n", *driver)
		os.Exit(2)
	}

	manager, err := authsession.New().
		WithConfig(cfg).
		WithLogger(logger).
		WithNotifier(func(reason authsession.LogoutReason) {
			fmt.Printf(">>> You have been logged out (%s)\n", reason)
		}).
		Build()
	if err != nil {
		logger.Fatal("build session manager", zap.Error(err))
	}

	baseURL := *apiURL
	if baseURL == "" {
		baseURL = os.Getenv("CRM_API_URL")
	}
	if baseURL == "" {
		addr, stop, err := startFakeAPI(*ttl)
		if err != nil {
			logger.Fatal("start fake api", zap.Error(err))
		}
		defer stop()
		baseURL = "http://" + addr
		logger.Info("started in-process CRM API", zap.String("url", baseURL))
	}

	client, err := crm.NewClient(baseURL, manager.HTTPClient(), logger)
	if err != nil {
		logger.Fatal("build crm client", zap.Error(err))
	}

	ctx := context.Background()

	// A previous run may have left a live session in durable storage.
	manager.Restore(ctx)
	if manager.Authenticated() {
		fmt.Printf("resumed session for %s\n", manager.Session().Email)
	} else {
		resp, err := client.Login(ctx, "admin@crm.example", "correct-horse")
		if err != nil {
			logger.Fatal("login", zap.Error(err))
		}
		manager.Login(ctx, resp)
		fmt.Printf("signed in as %s (role %s)\n", manager.Session().Email, manager.Session().Role)
	}

	leads, err := client.Leads(ctx)
	if err != nil {
		logger.Fatal("list leads", zap.Error(err))
	}
	page := crm.ListOptions{SortBy: "name", Page: 1, PerPage: 5}.ApplyLeads(leads)
	fmt.Printf("leads (%d total, showing %d):\n", len(leads), len(page))
	for _, lead := range page {
		fmt.Printf("  %-16s %-24s %s\n", lead.Name, lead.Email, lead.Status)
	}

	fmt.Printf("waiting for auto-logout (token ttl %s)...\n", *ttl)
	for manager.Authenticated() {
		time.Sleep(100 * time.Millisecond)
	}

	snapshot := manager.Metrics().Snapshot()
	fmt.Printf("lifecycle counters: logins=%d manual-logouts=%d auto-logouts=%d restores=%d\n",
		snapshot[authsession.MetricLogin],
		snapshot[authsession.MetricLogoutManual],
		snapshot[authsession.MetricLogoutExpired],
		snapshot[authsession.MetricRestoreResumed])
}

// startFakeAPI serves a minimal slice of the CRM admin API on a loopback
// port: /auth/login issuing HS256 tokens and a bearer-guarded /leads.
func startFakeAPI(ttl time.Duration) (addr string, stop func(), err error) {
	secret := []byte("demo-signing-secret")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
			writeError(w, http.StatusBadRequest, "invalid credentials payload")
			return
		}
		claims := jwt.RegisteredClaims{
			Subject:   creds.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "token signing failed")
			return
		}
		json.NewEncoder(w).Encode(authsession.LoginResponse{
			AccessToken:  signed,
			RefreshToken: "demo-refresh",
			Role:         "ADMIN",
			UserID:       "u-demo",
			Permissions:  []string{"leads:read", "agents:read", "tasks:write"},
		})
	})
	mux.HandleFunc("GET /leads", func(w http.ResponseWriter, r *http.Request) {
		if !bearerValid(r, secret) {
			writeError(w, http.StatusUnauthorized, "missing or expired token")
			return
		}
		json.NewEncoder(w).Encode([]crm.Lead{
			{ID: "l-1", Name: "Ada Lovelace", Email: "ada@example.com", Status: "new", CreatedAt: time.Now()},
			{ID: "l-2", Name: "Grace Hopper", Email: "grace@example.com", Status: "contacted", CreatedAt: time.Now()},
			{ID: "l-3", Name: "Alan Turing", Email: "alan@example.com", Status: "won", CreatedAt: time.Now()},
		})
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	return listener.Addr().String(), func() { server.Close() }, nil
}

func bearerValid(r *http.Request, secret []byte) bool {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return false
	}
	_, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
