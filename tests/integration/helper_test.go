package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/dentora/clinicledger/internal/adapter/http"
	"github.com/dentora/clinicledger/internal/adapter/http/handler"
	"github.com/dentora/clinicledger/internal/adapter/repository/postgres"
	redisrepo "github.com/dentora/clinicledger/internal/adapter/repository/redis"
	infraredis "github.com/dentora/clinicledger/internal/infrastructure/redis"
	"github.com/dentora/clinicledger/internal/usecase"
	"github.com/dentora/clinicledger/tests/testutil"
)

const testTenant = "clinic-integration"

// billingEnv wires the full HTTP stack against real postgres and redis.
type billingEnv struct {
	DB     *testutil.TestDB
	Router http.Handler
	Redis  *redis.Client

	Payments  *usecase.PaymentUseCase
	Balances  *usecase.BalanceUseCase
	Reconcile *usecase.ReconcileUseCase
	Outbox    *postgres.OutboxRepository
}

func newBillingEnv(t *testing.T, ctx context.Context) *billingEnv {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	labWorkRepo := postgres.NewLabWorkRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	retrier := postgres.NewRetrier(zerolog.Nop())
	idGen := postgres.NewULIDGenerator()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	balanceCache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	balanceUC := usecase.NewBalanceUseCase(patientRepo, appointmentRepo, labWorkRepo, paymentRepo, balanceCache)
	reconcileUC := usecase.NewReconcileUseCase(txManager, balanceUC, appointmentRepo, labWorkRepo, paymentRepo, outboxRepo, idGen, retrier)
	paymentUC := usecase.NewPaymentUseCase(txManager, patientRepo, paymentRepo, auditRepo, outboxRepo, idGen, balanceUC, reconcileUC, zerolog.Nop())
	auditUC := usecase.NewAuditUseCase(auditRepo)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		BalanceHandler:   handler.NewBalanceHandler(balanceUC, reconcileUC),
		PaymentHandler:   handler.NewPaymentHandler(paymentUC),
		AuditHandler:     handler.NewAuditHandler(auditUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		Logger:           zerolog.Nop(),
	})

	return &billingEnv{
		DB:        testDB,
		Router:    router,
		Redis:     redisClient,
		Payments:  paymentUC,
		Balances:  balanceUC,
		Reconcile: reconcileUC,
		Outbox:    outboxRepo,
	}
}

// do executes a request against the router with tenant headers set.
func (env *billingEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("X-Tenant-ID", testTenant)
	req.Header.Set("X-Actor-ID", "integration-suite")

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}
