package rpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/innings-sim/internal/match"
	"github.com/xtding233/innings-sim/internal/roster"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	raw, reg, err := roster.Builtin()
	require.NoError(t, err)
	log := zaptest.NewLogger(t)

	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	RegisterInningsServer(gs, NewServer(match.New(raw, reg, log), log))
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })
	return NewClient(cc)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestSimulateRoundTrip(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	in := mustStruct(t, map[string]any{"seed": 21, "overs": 2, "lineup": []any{"IN002", "IN001", "IN003"}})

	a, err := c.Simulate(ctx, in)
	require.NoError(t, err)
	b, err := c.Simulate(ctx, in)
	require.NoError(t, err)

	fa, fb := a.GetFields(), b.GetFields()
	assert.NotEqual(t, fa["id"].GetStringValue(), fb["id"].GetStringValue())
	assert.Equal(t, float64(21), fa["seed"].GetNumberValue())
	assert.Equal(t, fa["result"].AsInterface(), fb["result"].AsInterface())

	fixture := fa["fixture"].GetStructValue().AsMap()
	assert.Equal(t, float64(2), fixture["overs"])
	assert.Equal(t, []any{"IN002", "IN001", "IN003"}, fixture["lineup"])
	assert.NotEmpty(t, fa["commentary"].GetListValue().GetValues())
}

func TestSimulateInvalidArgument(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	for name, m := range map[string]map[string]any{
		"negative target": {"target": -5},
		"fractional":      {"overs": 1.5},
		"wrong type":      {"batting": 3},
		"unknown player":  {"lineup": []any{"IN001", "ZZ"}},
		"unknown field":   {"innings": 2},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Simulate(ctx, mustStruct(t, m))
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestOdds(t *testing.T) {
	c := newClient(t)
	out, err := c.Odds(context.Background(), mustStruct(t, map[string]any{"seed": 4, "trials": 50, "workers": 2}))
	require.NoError(t, err)
	odds := out.GetFields()["odds"].GetStructValue().AsMap()
	assert.Equal(t, float64(50), odds["trials"])

	_, err = c.Odds(context.Background(), mustStruct(t, map[string]any{"trials": 0}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
