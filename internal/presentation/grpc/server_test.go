package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	"github.com/bibbank/credit-risk-service/pkg/auth"
)

func startBufServer(t *testing.T) (*grpc.ClientConn, *auth.JWTService) {
	t.Helper()

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "bib-identity",
		Expiration: time.Minute,
	})
	require.NoError(t, err)

	srv, err := NewServer(
		buildHandler(&mockAssessmentRepo{}, &mockEventPublisher{}),
		jwtSvc,
		ServerOptions{ServiceName: "credit-risk-service"},
		testLogger(),
	)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.ServeListener(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn, jwtSvc
}

func TestServer_QuoteOverTheWire(t *testing.T) {
	conn, jwtSvc := startBufServer(t)

	token, err := jwtSvc.GenerateToken(uuid.New(), testTenantID, []string{auth.RoleAPIClient})
	require.NoError(t, err)

	req := &QuoteCreditRequest{Profile: &CreditProfileMsg{MonthlyIncome: "4000", MonthlyDebt: "500", Age: 30}}

	t.Run("authenticated call succeeds", func(t *testing.T) {
		ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
		var resp QuoteCreditResponse

		err := conn.Invoke(ctx, FullMethod("QuoteCredit"), req, &resp, grpc.CallContentSubtype(CodecName))

		require.NoError(t, err)
		require.NotNil(t, resp.Result)
		assert.Equal(t, int32(800), resp.Result.Score)
		assert.Equal(t, "LOW", resp.Result.RiskLevel)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		var resp QuoteCreditResponse

		err := conn.Invoke(context.Background(), FullMethod("QuoteCredit"), req, &resp, grpc.CallContentSubtype(CodecName))

		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("health check needs no token", func(t *testing.T) {
		resp, err := healthpb.NewHealthClient(conn).Check(context.Background(),
			&healthpb.HealthCheckRequest{Service: "credit-risk-service"})

		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
	})
}

func TestNewServer_InvalidTLSFiles(t *testing.T) {
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "s", Issuer: "i", Expiration: time.Minute})
	require.NoError(t, err)

	_, err = NewServer(nil, jwtSvc, ServerOptions{CertFile: "missing.crt", KeyFile: "missing.key"}, testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TLS")
}
